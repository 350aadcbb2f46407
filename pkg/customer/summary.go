// Package customer turns raw Qonversion API payloads into a fixed customer
// summary for display in the helpdesk sidebar.
package customer

// Status is the overall subscription standing of a customer.
type Status string

const (
	// StatusNone means no entitlements exist (or the customer was never a
	// Qonversion user - the two are indistinguishable to the caller).
	StatusNone Status = "None"

	// StatusActive means at least one entitlement is active.
	StatusActive Status = "Active"

	// StatusExpired means entitlements exist but none are active.
	StatusExpired Status = "Expired"
)

// Summary is the normalized, display-ready customer record.
// It is built fresh on every lookup and never persisted.
type Summary struct {
	Country         string
	Platform        string
	PlatformVersion string
	DeviceMake      string
	DeviceModel     string
	AppVersion      string

	// CustomerSince is the formatted creation date of the Qonversion user
	// record, when the user fetch succeeded.
	CustomerSince string

	SubscriptionStatus  Status
	SubscriptionDetails []Detail

	// QonversionUserID is the provider-side user id resolved from the email.
	QonversionUserID string
}

// Detail is one normalized entitlement line.
type Detail struct {
	ID        string
	Active    bool
	ProductID string

	// Source is the classified platform of the entitlement ("iOS", "Android",
	// "Web", ...), empty when the raw source was an environment string.
	Source string

	// StartedAt/ExpiresAt are raw Unix timestamps; the Formatted variants are
	// "Jan 02, 2006" in UTC. All stay empty/nil when the API omitted them.
	StartedAt          *int64
	StartedAtFormatted string
	ExpiresAt          *int64
	ExpiresAtFormatted string

	// WillRenew is set only when the nested product subscription reported a
	// renew state.
	WillRenew *bool
}
