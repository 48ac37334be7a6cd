package schedule

import (
	"context"
	"time"
)

// MarkerTick is one emission of the current-time marker.
type MarkerTick struct {
	At      time.Time
	Visible bool
	Offset  float64
}

// WatchMarker emits the marker for the selected day immediately and then
// every interval until ctx is done. Intervals over a minute are capped.
func (b *Board) WatchMarker(ctx context.Context, interval time.Duration) <-chan MarkerTick {
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	out := make(chan MarkerTick, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			now := b.now()
			offset, ok := Marker(b.Day(), now)
			select {
			case out <- MarkerTick{At: now, Visible: ok, Offset: offset}:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
