package timelog

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the single source of truth for time logs. Every mutation
// validates invariants, applies the change in memory and writes the full
// collection through the Persister. The active log is derived from the
// collection, never tracked separately.
type Store struct {
	mu        sync.Mutex
	logs      []TimeLog
	held      string
	persister Persister
	observers []Observer
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithObserver registers an observer for committed mutations.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// NewStore creates an empty store backed by persister.
func NewStore(persister Persister, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{persister: persister, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted snapshot.
// Unreadable or malformed snapshots leave the store empty.
func (s *Store) Load(ctx context.Context) {
	var logs []TimeLog
	if s.persister != nil {
		loaded, err := s.persister.Load(ctx)
		if err != nil {
			s.logger.Warn("time log snapshot unreadable, starting empty", "error", err)
		} else {
			logs = loaded
		}
	}

	logs, repaired := normalize(logs)
	if repaired > 0 {
		s.logger.Warn("closed extra running logs from snapshot", "count", repaired)
	}

	s.mu.Lock()
	s.logs = logs
	s.held = ""
	s.mu.Unlock()

	s.logger.Info("time logs loaded", "count", len(logs))
}

// List returns a copy of all logs, newest first.
func (s *Store) List() []TimeLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.logs)
}

// Get returns the log with the given id.
func (s *Store) Get(id string) (TimeLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return TimeLog{}, ErrLogNotFound
	}
	return s.logs[i].Clone(), nil
}

// Active returns the running log, if any.
func (s *Store) Active() (TimeLog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.activeIndex()
	if i < 0 {
		return TimeLog{}, false
	}
	return s.logs[i].Clone(), true
}

// Insert adds a new log at the front of the collection.
func (s *Store) Insert(ctx context.Context, log TimeLog) (TimeLog, error) {
	s.mu.Lock()
	m, err := s.insertLocked(ctx, log)
	s.mu.Unlock()
	if err != nil {
		return TimeLog{}, err
	}
	s.notify(ctx, m)
	return m.Log.Clone(), nil
}

// Replace overwrites the stored log that has the same id.
func (s *Store) Replace(ctx context.Context, log TimeLog) (TimeLog, error) {
	s.mu.Lock()
	i := s.indexOf(log.ID)
	if i < 0 {
		s.mu.Unlock()
		return TimeLog{}, ErrLogNotFound
	}
	m, err := s.replaceLocked(ctx, i, log)
	s.mu.Unlock()
	if err != nil {
		return TimeLog{}, err
	}
	s.notify(ctx, m)
	return m.Log.Clone(), nil
}

// Upsert replaces the log when its id is stored and inserts it otherwise.
// The bool reports whether a new log was inserted.
func (s *Store) Upsert(ctx context.Context, log TimeLog) (TimeLog, bool, error) {
	s.mu.Lock()
	m, err := s.upsertLocked(ctx, log)
	s.mu.Unlock()
	if err != nil {
		return TimeLog{}, false, err
	}
	s.notify(ctx, m)
	return m.Log.Clone(), m.Kind != MutationUpdated, nil
}

func (s *Store) upsertLocked(ctx context.Context, log TimeLog) (Mutation, error) {
	if i := s.indexOf(log.ID); i >= 0 {
		return s.replaceLocked(ctx, i, log)
	}
	return s.insertLocked(ctx, log)
}

func (s *Store) insertLocked(ctx context.Context, log TimeLog) (Mutation, error) {
	if err := s.validateNew(log); err != nil {
		return Mutation{}, err
	}
	log = log.Clone()
	s.logs = append([]TimeLog{log}, s.logs...)
	kind := MutationCreated
	if log.Running() {
		kind = MutationStarted
	}
	s.commitLocked(ctx)
	return Mutation{Kind: kind, Log: log}, nil
}

func (s *Store) replaceLocked(ctx context.Context, i int, log TimeLog) (Mutation, error) {
	if err := s.validateEdit(i, log); err != nil {
		return Mutation{}, err
	}
	log = log.Clone()
	s.logs[i] = log
	s.commitLocked(ctx)
	return Mutation{Kind: MutationUpdated, Log: log}, nil
}

// Delete removes a log. Deleting the running log leaves no active log.
func (s *Store) Delete(ctx context.Context, id string) (TimeLog, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return TimeLog{}, ErrLogNotFound
	}
	if s.held == id {
		s.mu.Unlock()
		return TimeLog{}, ErrLogHeld
	}
	removed := s.logs[i]
	s.logs = append(s.logs[:i:i], s.logs[i+1:]...)
	s.commitLocked(ctx)
	s.mu.Unlock()

	s.notify(ctx, Mutation{Kind: MutationDeleted, Log: removed})
	return removed.Clone(), nil
}

// Close sets the end time of a running log. An end before the start is
// clamped to the start.
func (s *Store) Close(ctx context.Context, id string, at time.Time) (TimeLog, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return TimeLog{}, ErrLogNotFound
	}
	if s.held == id {
		s.mu.Unlock()
		return TimeLog{}, ErrLogHeld
	}
	if !s.logs[i].Running() {
		s.mu.Unlock()
		return TimeLog{}, ErrNotRunning
	}
	if at.Before(s.logs[i].StartTime) {
		at = s.logs[i].StartTime
	}
	s.logs[i].EndTime = TimePtr(at)
	closed := s.logs[i].Clone()
	s.commitLocked(ctx)
	s.mu.Unlock()

	s.notify(ctx, Mutation{Kind: MutationClosed, Log: closed})
	return closed.Clone(), nil
}

// Shift moves a closed log to start at newStart, keeping its duration.
// It is the one mutation allowed on a held log.
func (s *Store) Shift(ctx context.Context, id string, newStart time.Time) (TimeLog, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return TimeLog{}, ErrLogNotFound
	}
	if s.logs[i].Running() {
		s.mu.Unlock()
		return TimeLog{}, ErrLogRunning
	}
	duration := s.logs[i].Duration()
	s.logs[i].StartTime = newStart
	s.logs[i].EndTime = TimePtr(newStart.Add(duration))
	moved := s.logs[i].Clone()
	s.commitLocked(ctx)
	s.mu.Unlock()

	s.notify(ctx, Mutation{Kind: MutationMoved, Log: moved})
	return moved.Clone(), nil
}

// Hold reserves a closed log for dragging. Only one log can be held at a
// time; running logs cannot be held so the timer can always stop.
func (s *Store) Hold(id string) (TimeLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return TimeLog{}, ErrLogNotFound
	}
	if s.logs[i].Running() {
		return TimeLog{}, ErrLogRunning
	}
	if s.held != "" && s.held != id {
		return TimeLog{}, ErrLogHeld
	}
	s.held = id
	return s.logs[i].Clone(), nil
}

// Release clears the hold on id. Releasing a log that isn't held is a no-op.
func (s *Store) Release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held == id {
		s.held = ""
	}
}

// Held returns the id of the held log, or "".
func (s *Store) Held() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held
}

func (s *Store) validateNew(log TimeLog) error {
	if strings.TrimSpace(log.ID) == "" {
		return ErrInvalidInput
	}
	if s.indexOf(log.ID) >= 0 {
		return ErrDuplicateID
	}
	if log.EndTime != nil && log.EndTime.Before(log.StartTime) {
		return ErrInvalidRange
	}
	if log.Running() && s.activeIndex() >= 0 {
		return ErrAlreadyActive
	}
	return nil
}

func (s *Store) validateEdit(i int, log TimeLog) error {
	if s.held == log.ID {
		return ErrLogHeld
	}
	if log.EndTime != nil && log.EndTime.Before(log.StartTime) {
		return ErrInvalidRange
	}
	if log.Running() {
		if active := s.activeIndex(); active >= 0 && active != i {
			return ErrAlreadyActive
		}
	}
	return nil
}

// commitLocked writes the snapshot. Failures are logged and not retried;
// the in-memory collection stays authoritative.
func (s *Store) commitLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, cloneAll(s.logs)); err != nil {
		s.logger.Error("failed to persist time logs", "error", err, "count", len(s.logs))
	}
}

func (s *Store) notify(ctx context.Context, m Mutation) {
	for _, o := range s.observers {
		o.Observe(ctx, m)
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.logs {
		if s.logs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) activeIndex() int {
	for i := range s.logs {
		if s.logs[i].Running() {
			return i
		}
	}
	return -1
}

// normalize repairs snapshots that break store invariants: logs without an
// id get one, and when several logs are running only the latest-started one
// stays open, the rest end where it begins.
func normalize(logs []TimeLog) ([]TimeLog, int) {
	out := make([]TimeLog, 0, len(logs))
	var running []int
	for _, log := range logs {
		log = log.Clone()
		if strings.TrimSpace(log.ID) == "" {
			log.ID = uuid.NewString()
		}
		if log.Running() {
			running = append(running, len(out))
		}
		out = append(out, log)
	}
	if len(running) < 2 {
		return out, 0
	}

	sort.SliceStable(running, func(a, b int) bool {
		return out[running[a]].StartTime.After(out[running[b]].StartTime)
	})
	latest := out[running[0]].StartTime
	for _, i := range running[1:] {
		out[i].EndTime = TimePtr(latest)
	}
	return out, len(running) - 1
}

func cloneAll(logs []TimeLog) []TimeLog {
	out := make([]TimeLog, len(logs))
	for i, log := range logs {
		out[i] = log.Clone()
	}
	return out
}
