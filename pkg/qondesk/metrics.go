package qondesk

import "time"

// Metrics defines the interface for tracking integration operations.
// All methods are optional - components should gracefully handle nil metrics.
type Metrics interface {
	// RecordAPICall records an API call to Qonversion.
	// endpoint: The logical endpoint called (e.g., "identities", "users/entitlements")
	// status: HTTP status code as string (e.g., "200", "404", "500") or "error"
	// for transport failures.
	RecordAPICall(endpoint, status string)

	// RecordAPICallDuration records how long an API call took.
	RecordAPICallDuration(endpoint string, duration time.Duration)

	// RecordLookup records a full customer lookup.
	// outcome: "found", "not_found" or "error"
	RecordLookup(outcome string)

	// RecordLookupDuration records how long a full customer lookup took.
	RecordLookupDuration(duration time.Duration)

	// RecordSidebarRender records a sidebar render decision.
	// outcome: "rendered", "skipped_unconfigured" or "skipped_mailbox"
	RecordSidebarRender(outcome string)
}

// NoopMetrics is a no-op implementation of the Metrics interface.
type NoopMetrics struct{}

func (n *NoopMetrics) RecordAPICall(endpoint, status string)                         {}
func (n *NoopMetrics) RecordAPICallDuration(endpoint string, duration time.Duration) {}
func (n *NoopMetrics) RecordLookup(outcome string)                                   {}
func (n *NoopMetrics) RecordLookupDuration(duration time.Duration)                   {}
func (n *NoopMetrics) RecordSidebarRender(outcome string)                            {}
