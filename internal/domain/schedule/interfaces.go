package schedule

import (
	"context"
	"time"

	"github.com/rpggio/chronos/internal/domain/timelog"
)

// Store is the subset of the time log store the board drives.
type Store interface {
	List() []timelog.TimeLog
	Get(id string) (timelog.TimeLog, error)
	Shift(ctx context.Context, id string, newStart time.Time) (timelog.TimeLog, error)
	Hold(id string) (timelog.TimeLog, error)
	Release(id string)
}
