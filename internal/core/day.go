package core

import "time"

// DateLayout is the ISO 8601 date-only form used for business day
// identifiers and store keys.
const DateLayout = "2006-01-02"

// HubSpot zeroes its daily counters at 09:00 CST (UTC-6, no DST). This is a
// fixed upstream business rule, not configuration.
const (
	ResetHour              = 9
	ResetZoneOffsetMinutes = -6 * 60
)

// DefaultRetentionDays is the number of most-recent business days kept in the
// store; DefaultHistoryDays is the presentation window.
const (
	DefaultRetentionDays = 90
	DefaultHistoryDays   = 90
)

// CanonicalDay attributes an instant to a business day under a reset-hour
// rule: the instant is converted into the zone given by zoneOffsetMinutes,
// and local times-of-day earlier than resetHour belong to the previous
// calendar day. Pure and deterministic; callers supply the instant.
func CanonicalDay(instant time.Time, resetHour int, zoneOffsetMinutes int) string {
	zone := time.FixedZone("", zoneOffsetMinutes*60)
	local := instant.In(zone)
	if local.Hour() < resetHour {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format(DateLayout)
}

// BusinessDay applies the hardcoded HubSpot reset rule to an instant.
func BusinessDay(instant time.Time) string {
	return CanonicalDay(instant, ResetHour, ResetZoneOffsetMinutes)
}
