package schedule

import (
	"math"
	"time"

	"github.com/rpggio/chronos/internal/domain/timelog"
)

// Grid scale and snapping.
const (
	PixelsPerMinute = 1.5
	PixelsPerHour   = PixelsPerMinute * 60
	GridHeight      = PixelsPerHour * 24

	CreateSnap     = 15 // minutes
	DragSnap       = 5  // minutes
	DefaultSpan    = 30 * time.Minute
	StaleOpenSpan  = 60 * time.Minute
	MinBlockHeight = 20.0
	NoteMinHeight  = 35.0

	minutesPerDay = 24 * 60
	dayKey        = "2006-01-02"
)

// Day is one local calendar day of the grid.
type Day struct {
	start time.Time
}

// NewDay returns the local calendar day containing t.
func NewDay(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return Day{start: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)}
}

// ParseDay parses a YYYY-MM-DD date in loc.
func ParseDay(s string, loc *time.Location) (Day, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dayKey, s, loc)
	if err != nil {
		return Day{}, err
	}
	return NewDay(t, loc), nil
}

func (d Day) shift(days int) Day {
	return Day{start: time.Date(d.start.Year(), d.start.Month(), d.start.Day()+days, 0, 0, 0, 0, d.start.Location())}
}

// Prev returns the previous calendar day.
func (d Day) Prev() Day { return d.shift(-1) }

// Next returns the next calendar day.
func (d Day) Next() Day { return d.shift(1) }

// Start is local midnight.
func (d Day) Start() time.Time { return d.start }

// End is the last millisecond of the day.
func (d Day) End() time.Time { return d.Next().start.Add(-time.Millisecond) }

// Key formats the day as YYYY-MM-DD.
func (d Day) Key() string { return d.start.Format(dayKey) }

// IsToday reports whether now falls on d.
func (d Day) IsToday(now time.Time) bool {
	return NewDay(now, d.start.Location()).start.Equal(d.start)
}

// Contains reports whether t is within [Start, End].
func (d Day) Contains(t time.Time) bool {
	return !t.Before(d.start) && !t.After(d.End())
}

// Logs returns the logs that start on d. A log that crosses midnight only
// shows on its start day.
func (d Day) Logs(all []timelog.TimeLog) []timelog.TimeLog {
	var out []timelog.TimeLog
	for _, log := range all {
		if d.Contains(log.StartTime) {
			out = append(out, log)
		}
	}
	return out
}

// MinutesAt maps a vertical grid offset to minutes of day, snapped to the
// nearest CreateSnap boundary and kept inside the day.
func MinutesAt(y float64) int {
	minutes := math.Floor(y / PixelsPerMinute)
	snapped := int(math.Round(minutes/CreateSnap) * CreateSnap)
	return min(max(snapped, 0), minutesPerDay-CreateSnap)
}

// NewLogAt builds a DefaultSpan log starting at the snapped position y on d.
// The log has no id and is not stored.
func NewLogAt(d Day, y float64, categoryID string) timelog.TimeLog {
	start := time.Date(d.start.Year(), d.start.Month(), d.start.Day(), 0, MinutesAt(y), 0, 0, d.start.Location())
	return timelog.TimeLog{
		CategoryID: categoryID,
		StartTime:  start,
		EndTime:    timelog.TimePtr(start.Add(DefaultSpan)),
	}
}

// SnapDelta converts a pointer movement into whole minutes snapped to DragSnap.
func SnapDelta(dy float64) int {
	return int(math.Round(dy/PixelsPerMinute/DragSnap) * DragSnap)
}

func minuteOfDay(t time.Time, loc *time.Location) int {
	t = t.In(loc)
	return t.Hour()*60 + t.Minute()
}
