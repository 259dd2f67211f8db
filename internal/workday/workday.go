// Package workday maps timestamps onto logical work days.
//
// A work day does not start at midnight: activity logged before StartHour in
// the morning belongs to the previous calendar day. The boundary is evaluated
// in the UTC offset carried by the instant itself, so people travelling across
// timezones keep their local notion of "today".
package workday

import "time"

// StartHour is the local hour at which a work day begins. Anything before
// 03:00 local time counts toward the previous day.
const StartHour = 3

// BelongsTo reports whether instant falls inside the logical work day for the
// given calendar date. The day spans [day 03:00, day+1 03:00) in the offset of
// the instant: the start boundary is included, the end boundary is not. Only
// the year/month/day of day are considered.
func BelongsTo(day time.Time, instant time.Time) bool {
	start := time.Date(day.Year(), day.Month(), day.Day(), StartHour, 0, 0, 0, instant.Location())
	end := start.Add(24 * time.Hour)
	return !instant.Before(start) && instant.Before(end)
}
