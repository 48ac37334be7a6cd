package schedule

import (
	"time"

	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/timelog"
)

// Block is a log positioned on the day grid.
type Block struct {
	Log      timelog.TimeLog   `json:"log"`
	Category category.Category `json:"category"`
	Top      float64           `json:"top"`
	Height   float64           `json:"height"`
	ShowNote bool              `json:"show_note"`
	Dragging bool              `json:"dragging,omitempty"`
}

// Blocks lays out the logs that start on d. Running logs reach to now on
// today and get StaleOpenSpan on any other day. Sizing never changes the log.
func Blocks(d Day, logs []timelog.TimeLog, catalog category.Catalog, now time.Time) []Block {
	loc := d.start.Location()
	today := d.IsToday(now)

	dayLogs := d.Logs(logs)
	blocks := make([]Block, 0, len(dayLogs))
	for _, log := range dayLogs {
		startMinutes := minuteOfDay(log.StartTime, loc)

		var minutes float64
		switch {
		case !log.Running():
			minutes = log.Duration().Minutes()
		case today:
			minutes = float64(minuteOfDay(now, loc) - startMinutes)
		default:
			minutes = StaleOpenSpan.Minutes()
		}

		height := max(minutes*PixelsPerMinute, MinBlockHeight)
		cat, _ := catalog.Lookup(log.CategoryID)
		blocks = append(blocks, Block{
			Log:      log,
			Category: cat,
			Top:      float64(startMinutes) * PixelsPerMinute,
			Height:   height,
			ShowNote: height > NoteMinHeight && log.Note != "",
		})
	}
	return blocks
}

// Marker returns the current-time offset on d. ok is false unless d is today.
func Marker(d Day, now time.Time) (offset float64, ok bool) {
	if !d.IsToday(now) {
		return 0, false
	}
	return float64(minuteOfDay(now, d.start.Location())) * PixelsPerMinute, true
}
