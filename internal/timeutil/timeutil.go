// Package timeutil provides time formatting utilities.
package timeutil

import (
	"fmt"
	"time"
)

const hoursPerDay = 24

// UnknownAge is the age of a request without a creation time.
const UnknownAge = "unknown"

// FormatDuration formats a duration rounded to the second as "Xm Ys" or "Ys".
// It is used for the elapsed time of a run.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	minutes := d / time.Minute
	seconds := (d % time.Minute) / time.Second

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatAge renders how long ago a request was opened, e.g. "3d 4h", "5h" or "12m".
// A nil creation time renders as "unknown".
func FormatAge(createdAt *time.Time, now time.Time) string {
	if createdAt == nil {
		return UnknownAge
	}
	d := now.Sub(*createdAt)
	if d < 0 {
		d = 0
	}
	days := int(d / (hoursPerDay * time.Hour))
	hours := int((d % (hoursPerDay * time.Hour)) / time.Hour)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	}
}
