package mcp

import (
	"time"

	"github.com/rpggio/chronos/internal/domain/activity"
	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/entry"
	"github.com/rpggio/chronos/internal/domain/timelog"
)

type StartTimerParams struct {
	CategoryID string `json:"category_id"`
}

type QuickLogParams struct {
	CategoryID string `json:"category_id"`
	Minutes    int    `json:"minutes"`
}

type ListLogsParams struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

type LogIDParams struct {
	ID string `json:"id"`
}

type GetDayGridParams struct {
	Date string `json:"date,omitempty"`
	Move string `json:"move,omitempty"` // "prev" or "next"
}

type NewLogFormParams struct {
	CategoryID string `json:"category_id,omitempty"`
}

type GridClickParams struct {
	Y          float64 `json:"y"`
	CategoryID string  `json:"category_id,omitempty"`
	Commit     bool    `json:"commit,omitempty"`
}

type DragStartParams struct {
	ID string  `json:"id"`
	Y  float64 `json:"y"`
}

type DragMoveParams struct {
	Y float64 `json:"y"`
}

type GetRecentActivityParams struct {
	LogID        *string                `json:"log_id,omitempty"`
	ActivityType *activity.ActivityType `json:"activity_type,omitempty"`
	Limit        int                    `json:"limit,omitempty"`
	Offset       int                    `json:"offset,omitempty"`
}

// LogResponse is a time log with its resolved category.
type LogResponse struct {
	timelog.TimeLog
	Category   category.Category `json:"category"`
	DurationMS int64             `json:"duration_ms"`
	Duration   string            `json:"duration"`
}

type TimerResponse struct {
	Running   bool         `json:"running"`
	Log       *LogResponse `json:"log,omitempty"`
	ElapsedMS int64        `json:"elapsed_ms"`
	Elapsed   string       `json:"elapsed"`
}

type StopTimerResponse struct {
	Stopped *LogResponse `json:"stopped,omitempty"`
}

type SaveLogResponse struct {
	Log     LogResponse `json:"log"`
	Created bool        `json:"created"`
}

type DeleteLogResponse struct {
	Deleted string `json:"deleted"`
}

// FormResponse is the result of a grid or block click: the edit form to
// open, or Opened=false when the click was swallowed after a drag.
type FormResponse struct {
	Opened bool         `json:"opened"`
	Form   *entry.Form  `json:"form,omitempty"`
	Saved  *LogResponse `json:"saved,omitempty"`
}

type DragResponse struct {
	Moved bool         `json:"moved"`
	Log   *LogResponse `json:"log,omitempty"`
	State string       `json:"state"`
}

type ReportResponse struct {
	Report string `json:"report"`
}

type ActivityEntryResponse struct {
	Timestamp  time.Time             `json:"timestamp"`
	Type       activity.ActivityType `json:"type"`
	LogID      string                `json:"log_id"`
	CategoryID string                `json:"category_id,omitempty"`
	Summary    string                `json:"summary"`
	Details    string                `json:"details,omitempty"`
}
