package stats

import (
	"math"
	"sort"
	"time"

	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/timelog"
)

// TrendDays is the length of the daily trend window, today inclusive.
const TrendDays = 7

const dateKey = "2006-01-02"

// ByCategory sums closed log durations per category, keeps entries that
// round to more than zero hours and sorts them by hours descending. Running
// logs are excluded. Negative durations count as zero.
func ByCategory(logs []timelog.TimeLog, catalog category.Catalog) []CategoryTotal {
	sums := make(map[string]time.Duration)
	var order []string
	for _, log := range logs {
		if log.Running() {
			continue
		}
		if _, seen := sums[log.CategoryID]; !seen {
			order = append(order, log.CategoryID)
		}
		sums[log.CategoryID] += clamp(log.Duration())
	}

	var total time.Duration
	for _, d := range sums {
		total += d
	}

	out := make([]CategoryTotal, 0, len(sums))
	for _, id := range order {
		d := sums[id]
		hours := round(d.Hours(), 2)
		if hours <= 0 {
			continue
		}
		cat, _ := catalog.Lookup(id)
		share := 0.0
		if total > 0 {
			share = round(float64(d)/float64(total)*100, 1)
		}
		out = append(out, CategoryTotal{
			CategoryID:  id,
			Name:        cat.Name,
			Color:       cat.Color,
			Hours:       hours,
			RawDuration: d.Milliseconds(),
			Share:       share,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Hours != out[j].Hours {
			return out[i].Hours > out[j].Hours
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Daily returns exactly TrendDays entries, oldest first, covering today and
// the preceding days by local calendar date in loc. A log counts toward the
// day it started on.
func Daily(logs []timelog.TimeLog, now time.Time, loc *time.Location) []DayTotal {
	if loc == nil {
		loc = time.Local
	}
	sums := make(map[string]time.Duration)
	for _, log := range logs {
		if log.Running() {
			continue
		}
		sums[log.StartTime.In(loc).Format(dateKey)] += clamp(log.Duration())
	}

	today := now.In(loc)
	y, m, d := today.Date()
	out := make([]DayTotal, 0, TrendDays)
	for i := TrendDays - 1; i >= 0; i-- {
		day := time.Date(y, m, d-i, 0, 0, 0, 0, loc)
		key := day.Format(dateKey)
		out = append(out, DayTotal{
			Date:  key,
			Label: day.Format("01/02"),
			Hours: round(sums[key].Hours(), 1),
		})
	}
	return out
}

// Summarize builds the statistics view.
func Summarize(logs []timelog.TimeLog, catalog category.Catalog, now time.Time, loc *time.Location) Summary {
	cats := ByCategory(logs, catalog)
	total := 0.0
	for _, c := range cats {
		total += c.Hours
	}
	top := "-"
	if len(cats) > 0 {
		top = cats[0].Name
	}
	return Summary{
		TotalHours: round(total, 1),
		TopFocus:   top,
		Categories: cats,
		Daily:      Daily(logs, now, loc),
	}
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
