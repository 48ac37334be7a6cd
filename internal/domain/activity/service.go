package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/chronos/internal/domain/timelog"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// LogActivity logs an activity entry with the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// GetRecentActivity lists activity entries with filtering.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	return s.repo.List(ctx, opts)
}

// Observe records a committed store mutation. Failures are logged only so
// the audit trail never blocks tracking.
func (s *Service) Observe(ctx context.Context, m timelog.Mutation) {
	entry := &ActivityEntry{
		LogID:        m.Log.ID,
		CategoryID:   m.Log.CategoryID,
		ActivityType: typeFor(m.Kind),
		Summary:      fmt.Sprintf("%s log %s", m.Kind, m.Log.ID),
	}
	if details, err := json.Marshal(m.Log); err == nil {
		entry.Details = string(details)
	}
	if err := s.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("failed to record activity", "error", err, "log_id", m.Log.ID, "kind", m.Kind)
	}
}

func typeFor(kind timelog.MutationKind) ActivityType {
	switch kind {
	case timelog.MutationStarted:
		return TypeTimerStarted
	case timelog.MutationClosed:
		return TypeTimerStopped
	case timelog.MutationMoved:
		return TypeLogMoved
	case timelog.MutationDeleted:
		return TypeLogDeleted
	case timelog.MutationUpdated:
		return TypeLogUpdated
	default:
		return TypeLogCreated
	}
}
