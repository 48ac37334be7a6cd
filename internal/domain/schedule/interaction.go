package schedule

import (
	"time"

	"github.com/rpggio/chronos/internal/domain/timelog"
)

// State is the pointer interaction state of the grid.
type State int

const (
	Idle State = iota
	Dragging
	JustReleased
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case JustReleased:
		return "just_released"
	default:
		return "idle"
	}
}

// ReleaseGuard is how long after a pointer-up a click still counts as
// part of the drag.
const ReleaseGuard = 250 * time.Millisecond

// Interaction separates drags from clicks. A pointer-up ends in
// JustReleased so the click that follows it is ignored. The guard clears
// when that click is dispatched or once ReleaseGuard has passed.
type Interaction struct {
	state      State
	log        timelog.TimeLog
	originY    float64
	lastDelta  int
	releasedAt time.Time
}

// State returns the current state.
func (i *Interaction) State() State { return i.state }

// Target returns the id of the log being dragged.
func (i *Interaction) Target() (string, bool) {
	if i.state != Dragging {
		return "", false
	}
	return i.log.ID, true
}

// PointerDown starts dragging log from offset y. It fails unless idle.
func (i *Interaction) PointerDown(log timelog.TimeLog, y float64) bool {
	if i.state != Idle {
		return false
	}
	i.state = Dragging
	i.log = log.Clone()
	i.originY = y
	i.lastDelta = 0
	return true
}

// PointerMove returns the new start time for the dragged log at offset y.
// ok is false when nothing should change: not dragging, a running log, or
// the snapped delta is the same as on the previous move.
func (i *Interaction) PointerMove(y float64) (start time.Time, ok bool) {
	if i.state != Dragging || i.log.Running() {
		return time.Time{}, false
	}
	delta := SnapDelta(y - i.originY)
	if delta == i.lastDelta {
		return time.Time{}, false
	}
	i.lastDelta = delta
	return i.log.StartTime.Add(time.Duration(delta) * time.Minute), true
}

// PointerUp ends a drag at time at.
func (i *Interaction) PointerUp(at time.Time) bool {
	if i.state != Dragging {
		return false
	}
	i.state = JustReleased
	i.log = timelog.TimeLog{}
	i.releasedAt = at
	return true
}

// Settle clears the post-drag guard.
func (i *Interaction) Settle() {
	if i.state == JustReleased {
		i.state = Idle
	}
}

// Expire clears the post-drag guard when it is older than ReleaseGuard.
func (i *Interaction) Expire(now time.Time) {
	if i.state == JustReleased && now.Sub(i.releasedAt) >= ReleaseGuard {
		i.state = Idle
	}
}

// ClickAllowed reports whether a click should be handled.
func (i *Interaction) ClickAllowed() bool {
	return i.state == Idle
}
