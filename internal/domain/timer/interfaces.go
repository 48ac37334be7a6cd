package timer

import (
	"context"
	"time"

	"github.com/rpggio/chronos/internal/domain/timelog"
)

// Store is the subset of timelog.Store the controller mutates.
type Store interface {
	Active() (timelog.TimeLog, bool)
	Insert(ctx context.Context, log timelog.TimeLog) (timelog.TimeLog, error)
	Close(ctx context.Context, id string, at time.Time) (timelog.TimeLog, error)
}
