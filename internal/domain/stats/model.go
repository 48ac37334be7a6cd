package stats

import (
	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/timelog"
)

// CategoryTotal is the summed tracked time of one category.
type CategoryTotal struct {
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Hours       float64 `json:"hours"`
	RawDuration int64   `json:"raw_duration_ms"`
	Share       float64 `json:"share"`
}

// DayTotal is the tracked time of one local calendar day.
type DayTotal struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// Summary backs the statistics view.
type Summary struct {
	TotalHours float64         `json:"total_hours"`
	TopFocus   string          `json:"top_focus"`
	Categories []CategoryTotal `json:"categories"`
	Daily      []DayTotal      `json:"daily"`
}

// HistoryItem is one row of the track-view timeline.
type HistoryItem struct {
	Log      timelog.TimeLog   `json:"log"`
	Category category.Category `json:"category"`
	Duration int64             `json:"duration_ms"`
}

// DayGroup holds the logs that started on one local date.
type DayGroup struct {
	Date  string        `json:"date"`
	Today bool          `json:"today"`
	Items []HistoryItem `json:"items"`
}
