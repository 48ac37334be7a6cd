package entry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/chronos/internal/domain/timelog"
)

// Service commits edit forms to the store.
type Service struct {
	store  Store
	loc    *time.Location
	logger *slog.Logger
	newID  func() string
}

// NewService creates a new entry service resolving clock fields in loc.
func NewService(store Store, loc *time.Location, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, loc: location(loc), logger: logger, newID: uuid.NewString}
}

// Save resolves the form and writes it. A form whose id matches a stored log
// replaces that log; anything else is inserted, with a fresh id when the
// form has none. The bool reports whether a new log was created.
func (s *Service) Save(ctx context.Context, form Form) (*timelog.TimeLog, bool, error) {
	if strings.TrimSpace(form.CategoryID) == "" {
		return nil, false, ErrMissingCategory
	}
	start, end, err := form.Resolve(s.loc)
	if err != nil {
		return nil, false, err
	}

	id := strings.TrimSpace(form.ID)
	if id == "" {
		id = s.newID()
	}
	log, created, err := s.store.Upsert(ctx, timelog.TimeLog{
		ID:         id,
		CategoryID: form.CategoryID,
		StartTime:  start,
		EndTime:    timelog.TimePtr(end),
		Note:       form.Note,
	})
	if err != nil {
		return nil, false, fmt.Errorf("saving log: %w", err)
	}

	s.logger.Debug("log saved", "log_id", log.ID, "created", created)
	return &log, created, nil
}

// Delete removes the log with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting log: %w", err)
	}
	return nil
}
