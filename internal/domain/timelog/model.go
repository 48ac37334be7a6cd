package timelog

import "time"

// TimeLog is one tracked interval of activity. A nil EndTime means the log is
// still running.
type TimeLog struct {
	ID         string     `json:"id"`
	CategoryID string     `json:"category_id"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	Note       string     `json:"note,omitempty"`
}

// Running reports whether the log has no end time.
func (l TimeLog) Running() bool {
	return l.EndTime == nil
}

// Duration returns EndTime - StartTime for closed logs and zero for running ones.
func (l TimeLog) Duration() time.Duration {
	if l.EndTime == nil {
		return 0
	}
	return l.EndTime.Sub(l.StartTime)
}

// DurationAt is Duration, except running logs are measured up to now.
func (l TimeLog) DurationAt(now time.Time) time.Duration {
	if l.EndTime == nil {
		return now.Sub(l.StartTime)
	}
	return l.EndTime.Sub(l.StartTime)
}

// Clone returns a copy that shares no pointers with l.
func (l TimeLog) Clone() TimeLog {
	if l.EndTime != nil {
		end := *l.EndTime
		l.EndTime = &end
	}
	return l
}

// MutationKind names a committed store change.
type MutationKind string

const (
	MutationStarted MutationKind = "started"
	MutationClosed  MutationKind = "closed"
	MutationCreated MutationKind = "created"
	MutationUpdated MutationKind = "updated"
	MutationMoved   MutationKind = "moved"
	MutationDeleted MutationKind = "deleted"
)

// Mutation describes a change that has been applied to the store.
type Mutation struct {
	Kind MutationKind
	Log  TimeLog
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
