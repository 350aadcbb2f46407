package customer

import (
	"strings"
	"time"

	"github.com/mihaimyh/qondesk/pkg/qonversion"
)

// dateLayout renders Unix timestamps as "Nov 14, 2023" (UTC).
const dateLayout = "Jan 02, 2006"

// newSummary builds the normalized summary from raw API payloads.
// Each input may be nil/empty when its best-effort fetch failed.
func newSummary(user *qonversion.User, props []qonversion.Property, ents []qonversion.Entitlement) *Summary {
	summary := &Summary{
		SubscriptionStatus:  StatusNone,
		SubscriptionDetails: []Detail{},
	}

	applyProperties(summary, props)

	// Platform fallback: classify the most recent entitlement's source when
	// the properties produced nothing usable.
	if summary.Platform == "" && len(ents) > 0 {
		summary.Platform = FormatPlatform(ents[0].Source)
	}

	if user != nil && user.Created != nil {
		summary.CustomerSince = formatTimestamp(*user.Created)
	}

	applyEntitlements(summary, ents)

	return summary
}

// applyProperties walks the property list and fills the device/app fields.
// Keys are matched case-insensitively against a fixed alias table; the last
// matching entry for a field wins. The platform value is collected raw and
// classified once after the walk so that a trailing environment string
// ("production") correctly leaves the platform unset.
func applyProperties(summary *Summary, props []qonversion.Property) {
	rawPlatform := ""

	for _, p := range props {
		switch strings.ToLower(p.Key) {
		case "_q_country", "country":
			summary.Country = p.Value
		case "_q_platform", "platform":
			rawPlatform = p.Value
		case "_q_os_version", "os_version", "osversion":
			summary.PlatformVersion = p.Value
		case "_q_device", "device", "device_model":
			summary.DeviceModel = p.Value
		case "_q_device_manufacturer", "device_manufacturer", "manufacturer":
			summary.DeviceMake = p.Value
		case "_q_app_version", "app_version", "version":
			summary.AppVersion = p.Value
		}
	}

	if rawPlatform != "" {
		summary.Platform = FormatPlatform(rawPlatform)
	}
}

// applyEntitlements partitions entitlements into active vs all and derives
// the subscription status:
//
//   - Active when at least one entitlement is active; details from the
//     active partition only.
//   - Expired when entitlements exist but none are active; details from the
//     full list.
//   - None when no entitlements exist; details stay empty.
func applyEntitlements(summary *Summary, ents []qonversion.Entitlement) {
	if len(ents) == 0 {
		return
	}

	active := make([]qonversion.Entitlement, 0, len(ents))
	for _, ent := range ents {
		if ent.Active {
			active = append(active, ent)
		}
	}

	if len(active) > 0 {
		summary.SubscriptionStatus = StatusActive
		summary.SubscriptionDetails = buildDetails(active)
		return
	}

	summary.SubscriptionStatus = StatusExpired
	summary.SubscriptionDetails = buildDetails(ents)
}

// buildDetails normalizes entitlements into display lines, preserving order.
func buildDetails(ents []qonversion.Entitlement) []Detail {
	details := make([]Detail, 0, len(ents))
	for _, ent := range ents {
		detail := Detail{
			ID:        ent.ID,
			Active:    ent.Active,
			ProductID: resolveProductID(ent),
			Source:    FormatPlatform(ent.Source),
		}

		if ent.Started != nil {
			started := *ent.Started
			detail.StartedAt = &started
			detail.StartedAtFormatted = formatTimestamp(started)
		}
		if ent.Expires != nil {
			expires := *ent.Expires
			detail.ExpiresAt = &expires
			detail.ExpiresAtFormatted = formatTimestamp(expires)
		}

		if ent.Product != nil && ent.Product.Subscription != nil {
			willRenew := ent.Product.Subscription.RenewState == "will_renew"
			detail.WillRenew = &willRenew
		}

		details = append(details, detail)
	}
	return details
}

// resolveProductID prefers the nested product id, falls back to the
// entitlement's own id, then to "Unknown".
func resolveProductID(ent qonversion.Entitlement) string {
	if ent.Product != nil && ent.Product.ProductID != "" {
		return ent.Product.ProductID
	}
	if ent.ID != "" {
		return ent.ID
	}
	return "Unknown"
}

func formatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(dateLayout)
}
