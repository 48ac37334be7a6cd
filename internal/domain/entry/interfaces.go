package entry

import (
	"context"

	"github.com/rpggio/chronos/internal/domain/timelog"
)

// Store is the subset of the time log store used by the edit form.
type Store interface {
	Upsert(ctx context.Context, log timelog.TimeLog) (timelog.TimeLog, bool, error)
	Delete(ctx context.Context, id string) (timelog.TimeLog, error)
}
