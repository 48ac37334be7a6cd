package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeTimerStarted ActivityType = "timer_started"
	TypeTimerStopped ActivityType = "timer_stopped"
	TypeLogCreated   ActivityType = "log_created"
	TypeLogUpdated   ActivityType = "log_updated"
	TypeLogMoved     ActivityType = "log_moved"
	TypeLogDeleted   ActivityType = "log_deleted"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	LogID        string       `json:"log_id"`
	CategoryID   string       `json:"category_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
