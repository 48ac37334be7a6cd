package stats

import (
	"sort"
	"time"

	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/timelog"
)

// History groups logs by the local date they started on. Groups are sorted
// newest date first and logs within a group by start time descending.
// Running logs report their duration up to now.
func History(logs []timelog.TimeLog, catalog category.Catalog, now time.Time, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}
	todayKey := now.In(loc).Format(dateKey)

	groups := make(map[string]*DayGroup)
	for _, log := range logs {
		key := log.StartTime.In(loc).Format(dateKey)
		g, ok := groups[key]
		if !ok {
			g = &DayGroup{Date: key, Today: key == todayKey}
			groups[key] = g
		}
		cat, _ := catalog.Lookup(log.CategoryID)
		g.Items = append(g.Items, HistoryItem{
			Log:      log,
			Category: cat,
			Duration: log.DurationAt(now).Milliseconds(),
		})
	}

	out := make([]DayGroup, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.Items, func(i, j int) bool {
			return g.Items[i].Log.StartTime.After(g.Items[j].Log.StartTime)
		})
		out = append(out, *g)
	}
	// date keys sort lexically
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}
