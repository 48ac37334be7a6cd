package stats_test

import (
	"testing"
	"time"

	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/stats"
	"github.com/rpggio/chronos/internal/domain/timelog"
	"github.com/stretchr/testify/require"
)

var (
	catalog = category.Catalog(category.Defaults)
	now     = time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)
)

func closed(id, cat string, start time.Time, d time.Duration) timelog.TimeLog {
	return timelog.TimeLog{ID: id, CategoryID: cat, StartTime: start, EndTime: timelog.TimePtr(start.Add(d))}
}

func TestByCategory_SumsClosedLogsOnly(t *testing.T) {
	logs := []timelog.TimeLog{
		closed("a", "1", now.Add(-5*time.Hour), 30*time.Minute),
		closed("b", "1", now.Add(-4*time.Hour), 45*time.Minute),
		closed("c", "1", now.Add(-3*time.Hour), 15*time.Minute),
		{ID: "run", CategoryID: "1", StartTime: now.Add(-time.Hour)},
		closed("d", "2", now.Add(-2*time.Hour), 30*time.Minute),
	}

	totals := stats.ByCategory(logs, catalog)
	require.Len(t, totals, 2)
	require.Equal(t, "Deep Work", totals[0].Name)
	require.Equal(t, 1.5, totals[0].Hours)
	require.Equal(t, (90 * time.Minute).Milliseconds(), totals[0].RawDuration)
	require.Equal(t, 75.0, totals[0].Share)
	require.Equal(t, "Learning", totals[1].Name)
	require.Equal(t, 0.5, totals[1].Hours)
}

func TestByCategory_DanglingCategoryIsUnknown(t *testing.T) {
	totals := stats.ByCategory([]timelog.TimeLog{
		closed("a", "gone", now.Add(-time.Hour), time.Hour),
	}, catalog)
	require.Len(t, totals, 1)
	require.Equal(t, "Unknown", totals[0].Name)
	require.Equal(t, "#ccc", totals[0].Color)
}

func TestByCategory_FiltersZeroAndClampsNegative(t *testing.T) {
	logs := []timelog.TimeLog{
		closed("zero", "3", now, 0),
		closed("tiny", "4", now, time.Second),
		closed("neg", "5", now, -2*time.Hour),
		closed("pos", "5", now, time.Hour),
	}
	totals := stats.ByCategory(logs, catalog)
	require.Len(t, totals, 1)
	require.Equal(t, "Leisure", totals[0].Name)
	require.Equal(t, 1.0, totals[0].Hours)
}

func TestDaily_AlwaysSevenChronologicalDays(t *testing.T) {
	for _, logs := range [][]timelog.TimeLog{
		nil,
		{closed("old", "1", now.AddDate(0, 0, -30), time.Hour)},
		{closed("today", "1", now.Add(-time.Hour), time.Hour)},
	} {
		days := stats.Daily(logs, now, time.UTC)
		require.Len(t, days, stats.TrendDays)
		require.Equal(t, "2026-05-14", days[0].Date)
		require.Equal(t, "2026-05-20", days[6].Date)
		require.Equal(t, "05/20", days[6].Label)
		for i := 1; i < len(days); i++ {
			require.Less(t, days[i-1].Date, days[i].Date)
		}
	}
}

func TestDaily_UsesLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 20:00 UTC on the 19th is 05:00 on the 20th in loc.
	logs := []timelog.TimeLog{closed("a", "1", time.Date(2026, 5, 19, 20, 0, 0, 0, time.UTC), 2*time.Hour)}

	days := stats.Daily(logs, now, loc)
	require.Equal(t, "2026-05-21", days[6].Date)
	require.Equal(t, 2.0, days[5].Hours)
	require.Zero(t, days[4].Hours)
}

func TestSevenLearningDays(t *testing.T) {
	var logs []timelog.TimeLog
	for i := 0; i < 7; i++ {
		start := time.Date(2026, 5, 20-i, 8, 0, 0, 0, time.UTC)
		logs = append(logs, closed(string(rune('a'+i)), "2", start, time.Hour))
	}

	days := stats.Daily(logs, now, time.UTC)
	for _, d := range days {
		require.Equal(t, 1.0, d.Hours, d.Date)
	}

	summary := stats.Summarize(logs, catalog, now, time.UTC)
	require.Len(t, summary.Categories, 1)
	require.Equal(t, "Learning", summary.Categories[0].Name)
	require.Equal(t, 7.0, summary.Categories[0].Hours)
	require.Equal(t, 100.0, summary.Categories[0].Share)
	require.Equal(t, 7.0, summary.TotalHours)
	require.Equal(t, "Learning", summary.TopFocus)
}

func TestSummarize_Empty(t *testing.T) {
	summary := stats.Summarize(nil, catalog, now, time.UTC)
	require.Equal(t, "-", summary.TopFocus)
	require.Zero(t, summary.TotalHours)
	require.Len(t, summary.Daily, stats.TrendDays)
}

func TestHistory_GroupsAndSorts(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	logs := []timelog.TimeLog{
		closed("y1", "1", yesterday.Add(-2*time.Hour), time.Hour),
		{ID: "run", CategoryID: "2", StartTime: now.Add(-10 * time.Minute)},
		closed("t1", "1", now.Add(-5*time.Hour), time.Hour),
		closed("y2", "9", yesterday, time.Hour),
	}

	groups := stats.History(logs, catalog, now, time.UTC)
	require.Len(t, groups, 2)
	require.Equal(t, "2026-05-20", groups[0].Date)
	require.True(t, groups[0].Today)
	require.Equal(t, "run", groups[0].Items[0].Log.ID)
	require.Equal(t, (10 * time.Minute).Milliseconds(), groups[0].Items[0].Duration)
	require.Equal(t, "t1", groups[0].Items[1].Log.ID)

	require.False(t, groups[1].Today)
	require.Equal(t, "y2", groups[1].Items[0].Log.ID)
	require.Equal(t, "Unknown", groups[1].Items[0].Category.Name)
	require.Equal(t, "y1", groups[1].Items[1].Log.ID)
}
