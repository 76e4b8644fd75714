package utils

import "time"

const isoDateLayout = "2006-01-02"

// FormatDate returns the ISO representation (YYYY-MM-DD) of the given day
func FormatDate(day time.Time) string {
	return day.Format(isoDateLayout)
}

// ParseDate parses an ISO date (YYYY-MM-DD) into midnight of that day in the given location
func ParseDate(value string, location *time.Location) (time.Time, error) {
	return time.ParseInLocation(isoDateLayout, value, location)
}

// SameDay reports whether a and b fall on the same calendar day. b is compared in a's location.
func SameDay(a time.Time, b time.Time) bool {
	yearA, monthA, dayA := a.Date()
	yearB, monthB, dayB := b.In(a.Location()).Date()
	return yearA == yearB && monthA == monthB && dayA == dayB
}

// DaysFrom returns amount consecutive days starting at start. Index i holds start + i days.
func DaysFrom(start time.Time, amount int) []time.Time {
	if amount <= 0 {
		return nil
	}
	days := make([]time.Time, amount)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
