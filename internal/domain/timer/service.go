package timer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/chronos/internal/domain/timelog"
)

// QuickLogNote is attached to logs created by QuickLog.
const QuickLogNote = "Manual Entry"

// Service starts and stops timers against the store.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs overrides id generation.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a new timer service.
func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{store: store, logger: logger, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start stops the running log, if any, and starts a new one for categoryID.
func (s *Service) Start(ctx context.Context, categoryID string) (*timelog.TimeLog, error) {
	now := s.now()
	if _, err := s.stopAt(ctx, now); err != nil {
		return nil, err
	}

	log, err := s.store.Insert(ctx, timelog.TimeLog{
		ID:         s.newID(),
		CategoryID: categoryID,
		StartTime:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("starting timer: %w", err)
	}
	s.logger.Debug("timer started", "log_id", log.ID, "category_id", categoryID)
	return &log, nil
}

// Stop closes the running log. It returns nil without error when no timer
// is running.
func (s *Service) Stop(ctx context.Context) (*timelog.TimeLog, error) {
	return s.stopAt(ctx, s.now())
}

// QuickLog records a finished block of minutes ending now.
func (s *Service) QuickLog(ctx context.Context, categoryID string, minutes int) (*timelog.TimeLog, error) {
	if minutes <= 0 {
		return nil, ErrInvalidDuration
	}
	end := s.now()
	log, err := s.store.Insert(ctx, timelog.TimeLog{
		ID:         s.newID(),
		CategoryID: categoryID,
		StartTime:  end.Add(-time.Duration(minutes) * time.Minute),
		EndTime:    timelog.TimePtr(end),
		Note:       QuickLogNote,
	})
	if err != nil {
		return nil, fmt.Errorf("quick log: %w", err)
	}
	return &log, nil
}

// Active returns the running log, if any.
func (s *Service) Active() (*timelog.TimeLog, bool) {
	log, ok := s.store.Active()
	if !ok {
		return nil, false
	}
	return &log, true
}

// Elapsed is the running time of the active log at now, or zero.
func (s *Service) Elapsed(now time.Time) time.Duration {
	log, ok := s.store.Active()
	if !ok {
		return 0
	}
	return log.DurationAt(now)
}

// Watch emits the elapsed time immediately and then every interval until
// ctx is done. It only reads the store.
func (s *Service) Watch(ctx context.Context, interval time.Duration) <-chan time.Duration {
	out := make(chan time.Duration, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case out <- s.Elapsed(s.now()):
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

func (s *Service) stopAt(ctx context.Context, at time.Time) (*timelog.TimeLog, error) {
	active, ok := s.store.Active()
	if !ok {
		return nil, nil
	}
	closed, err := s.store.Close(ctx, active.ID, at)
	if err != nil {
		return nil, fmt.Errorf("stopping timer: %w", err)
	}
	s.logger.Debug("timer stopped", "log_id", closed.ID, "duration", closed.Duration())
	return &closed, nil
}
