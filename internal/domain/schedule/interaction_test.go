package schedule_test

import (
	"testing"
	"time"

	"github.com/rpggio/chronos/internal/domain/schedule"
	"github.com/rpggio/chronos/internal/domain/timelog"
	"github.com/stretchr/testify/require"
)

func TestInteraction_Lifecycle(t *testing.T) {
	var ia schedule.Interaction
	require.True(t, ia.ClickAllowed())

	log := closedAt("a", now, 45*time.Minute)
	require.True(t, ia.PointerDown(log, 100))
	require.Equal(t, schedule.Dragging, ia.State())
	require.False(t, ia.ClickAllowed())
	require.False(t, ia.PointerDown(log, 100))

	id, ok := ia.Target()
	require.True(t, ok)
	require.Equal(t, "a", id)

	require.True(t, ia.PointerUp(now))
	require.Equal(t, schedule.JustReleased, ia.State())
	require.False(t, ia.ClickAllowed())

	ia.Settle()
	require.Equal(t, schedule.Idle, ia.State())
	require.True(t, ia.ClickAllowed())
	require.False(t, ia.PointerUp(now))
}

func TestInteraction_ReleaseGuardExpires(t *testing.T) {
	var ia schedule.Interaction
	ia.PointerDown(closedAt("a", now, time.Hour), 0)
	ia.PointerUp(now)

	ia.Expire(now.Add(schedule.ReleaseGuard - time.Millisecond))
	require.Equal(t, schedule.JustReleased, ia.State())

	ia.Expire(now.Add(schedule.ReleaseGuard))
	require.Equal(t, schedule.Idle, ia.State())
	require.True(t, ia.ClickAllowed())

	// Expire leaves an active drag alone.
	ia.PointerDown(closedAt("a", now, time.Hour), 0)
	ia.Expire(now.Add(time.Hour))
	require.Equal(t, schedule.Dragging, ia.State())
}

func TestInteraction_MoveSnapsAndSkipsRepeats(t *testing.T) {
	var ia schedule.Interaction
	log := closedAt("a", now, 45*time.Minute)
	ia.PointerDown(log, 300)

	_, ok := ia.PointerMove(302)
	require.False(t, ok)

	start, ok := ia.PointerMove(300 + 15)
	require.True(t, ok)
	require.Equal(t, now.Add(10*time.Minute), start)

	_, ok = ia.PointerMove(300 + 16)
	require.False(t, ok)

	start, ok = ia.PointerMove(300)
	require.True(t, ok)
	require.Equal(t, now, start)

	start, ok = ia.PointerMove(300 - schedule.PixelsPerHour)
	require.True(t, ok)
	require.Equal(t, now.Add(-time.Hour), start)
}

func TestInteraction_RunningLogDoesNotMove(t *testing.T) {
	var ia schedule.Interaction
	ia.PointerDown(timelog.TimeLog{ID: "r", StartTime: now}, 0)

	_, ok := ia.PointerMove(300)
	require.False(t, ok)
	require.Equal(t, schedule.Dragging, ia.State())
}

func TestInteraction_DragPreservesDuration(t *testing.T) {
	original := closedAt("a", now, 47*time.Minute+13*time.Second)
	for _, dy := range []float64{-900, -7.4, 0.1, 7.6, 33, 1234.5} {
		var ia schedule.Interaction
		ia.PointerDown(original, 500)
		start, ok := ia.PointerMove(500 + dy)
		if !ok {
			continue
		}
		moved := original.Clone()
		moved.StartTime = start
		moved.EndTime = timelog.TimePtr(start.Add(original.Duration()))
		require.Equal(t, original.Duration(), moved.Duration())
		require.Zero(t, start.Sub(original.StartTime)%(schedule.DragSnap*time.Minute))
	}
}
