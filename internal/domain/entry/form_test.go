package entry_test

import (
	"testing"
	"time"

	"github.com/rpggio/chronos/internal/domain/entry"
	"github.com/rpggio/chronos/internal/domain/timelog"
	"github.com/stretchr/testify/require"
)

var loc = time.FixedZone("UTC+2", 2*3600)

func TestResolve_SameDay(t *testing.T) {
	start, end, err := entry.Form{Date: "2026-06-10", Start: "09:15", End: "10:45"}.Resolve(loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 6, 10, 9, 15, 0, 0, loc), start)
	require.Equal(t, time.Date(2026, 6, 10, 10, 45, 0, 0, loc), end)
}

func TestResolve_OvernightIsExactlyOneDayLater(t *testing.T) {
	for _, tc := range []struct{ start, end string }{
		{"23:00", "01:00"},
		{"22:30", "22:29"},
		{"00:01", "00:00"},
		{"12:00", "06:00"},
	} {
		start, end, err := entry.Form{Date: "2026-12-31", Start: tc.start, End: tc.end}.Resolve(loc)
		require.NoError(t, err)

		naive, err := time.ParseInLocation("2006-01-02 15:04", "2026-12-31 "+tc.end, loc)
		require.NoError(t, err)
		require.Equal(t, naive.Add(24*time.Hour), end, "%s-%s", tc.start, tc.end)
		require.True(t, end.After(start))
	}
}

func TestResolve_EqualClocksIsZeroLength(t *testing.T) {
	start, end, err := entry.Form{Date: "2026-06-10", Start: "09:00", End: "09:00"}.Resolve(loc)
	require.NoError(t, err)
	require.Equal(t, start, end)
}

func TestResolve_RejectsMalformedFields(t *testing.T) {
	_, _, err := entry.Form{Date: "06/10/2026", Start: "09:00", End: "10:00"}.Resolve(loc)
	require.ErrorIs(t, err, entry.ErrInvalidDate)

	_, _, err = entry.Form{Date: "2026-06-10", Start: "9am", End: "10:00"}.Resolve(loc)
	require.ErrorIs(t, err, entry.ErrInvalidClock)

	_, _, err = entry.Form{Date: "2026-06-10", Start: "09:00", End: "24:30"}.Resolve(loc)
	require.ErrorIs(t, err, entry.ErrInvalidClock)
}

func TestBlank(t *testing.T) {
	now := time.Date(2026, 6, 10, 23, 30, 0, 0, time.UTC)
	form := entry.Blank(now, loc, "3")
	require.Equal(t, "2026-06-11", form.Date)
	require.Equal(t, "09:00", form.Start)
	require.Equal(t, "09:30", form.End)
	require.Equal(t, "3", form.CategoryID)
	require.Empty(t, form.ID)
}

func TestFromLog(t *testing.T) {
	now := time.Date(2026, 6, 10, 16, 5, 0, 0, loc)
	closed := timelog.TimeLog{
		ID:         "a",
		CategoryID: "2",
		StartTime:  time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC),
		EndTime:    timelog.TimePtr(time.Date(2026, 6, 10, 13, 20, 0, 0, time.UTC)),
		Note:       "paper",
	}
	form := entry.FromLog(closed, now, loc)
	require.Equal(t, entry.Form{ID: "a", CategoryID: "2", Date: "2026-06-10", Start: "14:00", End: "15:20", Note: "paper"}, form)

	running := timelog.TimeLog{ID: "r", CategoryID: "1", StartTime: time.Date(2026, 6, 10, 15, 0, 0, 0, loc)}
	form = entry.FromLog(running, now, loc)
	require.Equal(t, "15:00", form.Start)
	require.Equal(t, "16:05", form.End)
}
