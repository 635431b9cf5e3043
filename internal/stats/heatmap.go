// internal/stats/heatmap.go
package stats

import (
	"time"

	"github-dashboard/internal/model"
)

const (
	Days  = 7
	Hours = 24

	// MaxLevel is the hottest heatmap intensity.
	MaxLevel = 4
)

// DayNames labels heatmap rows, Sunday first like time.Weekday.
var DayNames = [Days]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Heatmap counts push events per weekday and hour.
type Heatmap struct {
	Counts [Days][Hours]int
	Max    int
}

// BuildHeatmap buckets every push event by the weekday and hour of its
// creation time in loc.
func BuildHeatmap(events []model.Event, loc *time.Location) Heatmap {
	var h Heatmap
	for _, e := range events {
		if e.Type != model.PushEvent {
			continue
		}
		t := e.CreatedAt.In(loc)
		d, hr := int(t.Weekday()), t.Hour()
		h.Counts[d][hr]++
		if h.Counts[d][hr] > h.Max {
			h.Max = h.Counts[d][hr]
		}
	}
	return h
}

// Level maps a cell to an intensity in [0, MaxLevel] by linear binning
// against the busiest cell.
func (h Heatmap) Level(d, hr int) int {
	return Level(h.Counts[d][hr], h.Max)
}

// Level is floor(count/peak * 4), capped at 4; zero when peak is zero.
func Level(count, peak int) int {
	if peak <= 0 {
		return 0
	}
	return min(MaxLevel, count*MaxLevel/peak)
}
