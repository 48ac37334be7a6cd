package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/chronos/internal/domain/timelog"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	defaultStart = "09:00"
	defaultEnd   = "09:30"
)

// Form holds the human-entered fields of the edit form. Clock fields are
// local wall-clock times on Date.
type Form struct {
	ID         string `json:"id,omitempty"`
	CategoryID string `json:"category_id"`
	Date       string `json:"date"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Note       string `json:"note,omitempty"`
}

// Blank returns the form for a new entry: today, 09:00 to 09:30.
func Blank(now time.Time, loc *time.Location, categoryID string) Form {
	return Form{
		CategoryID: categoryID,
		Date:       now.In(location(loc)).Format(dateLayout),
		Start:      defaultStart,
		End:        defaultEnd,
	}
}

// FromLog fills a form from an existing log. A running log gets now as its end.
func FromLog(log timelog.TimeLog, now time.Time, loc *time.Location) Form {
	loc = location(loc)
	start := log.StartTime.In(loc)
	end := now
	if log.EndTime != nil {
		end = *log.EndTime
	}
	return Form{
		ID:         log.ID,
		CategoryID: log.CategoryID,
		Date:       start.Format(dateLayout),
		Start:      start.Format(clockLayout),
		End:        end.In(loc).Format(clockLayout),
		Note:       log.Note,
	}
}

// Resolve turns the form's date and clock fields into absolute times in
// loc. An end clock before the start clock is taken as the next day.
func (f Form) Resolve(loc *time.Location) (start, end time.Time, err error) {
	loc = location(loc)
	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(f.Date), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, f.Date)
	}
	sh, sm, err := parseClock(f.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	eh, em, err := parseClock(f.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start = time.Date(date.Year(), date.Month(), date.Day(), sh, sm, 0, 0, loc)
	end = time.Date(date.Year(), date.Month(), date.Day(), eh, em, 0, 0, loc)
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour(), t.Minute(), nil
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
