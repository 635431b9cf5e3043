// internal/stats/timeago.go
package stats

import (
	"fmt"
	"time"
)

const (
	minute = 60
	hour   = 60 * minute
	day    = 24 * hour
	week   = 7 * day
	month  = 30 * day
	year   = 365 * day
)

// FormatTimeAgo renders the age of t relative to now. Every unit is floored,
// so ten days is "1 weeks ago". Times in the future read "just now".
func FormatTimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)

	switch {
	case seconds < minute:
		return "just now"
	case seconds < hour:
		return fmt.Sprintf("%d minutes ago", seconds/minute)
	case seconds < day:
		return fmt.Sprintf("%d hours ago", seconds/hour)
	case seconds < week:
		return fmt.Sprintf("%d days ago", seconds/day)
	case seconds < month:
		return fmt.Sprintf("%d weeks ago", seconds/week)
	case seconds < year:
		return fmt.Sprintf("%d months ago", seconds/month)
	default:
		return fmt.Sprintf("%d years ago", seconds/year)
	}
}
