package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/timelog"
)

// View is a rendered day grid.
type View struct {
	Date   string   `json:"date"`
	Today  bool     `json:"today"`
	State  string   `json:"state"`
	Height float64  `json:"height"`
	Marker *float64 `json:"marker,omitempty"`
	Blocks []Block  `json:"blocks"`
}

// Board is the day-grid controller. It owns the selected day and the
// pointer interaction, and drives drags through the store's hold.
type Board struct {
	mu      sync.Mutex
	store   Store
	catalog category.Catalog
	loc     *time.Location
	day     Day
	ia      Interaction
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures a Board.
type Option func(*Board)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithIDs overrides id generation for click-created logs.
func WithIDs(newID func() string) Option {
	return func(b *Board) { b.newID = newID }
}

// NewBoard creates a board showing today.
func NewBoard(store Store, catalog category.Catalog, loc *time.Location, logger *slog.Logger, opts ...Option) *Board {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if loc == nil {
		loc = time.Local
	}
	b := &Board{
		store:   store,
		catalog: catalog,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.day = NewDay(b.now(), loc)
	return b
}

// Day returns the selected day.
func (b *Board) Day() Day {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.day
}

// Open selects the day with the given YYYY-MM-DD key.
func (b *Board) Open(date string) (Day, error) {
	d, err := ParseDay(date, b.loc)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDay, date)
	}
	b.mu.Lock()
	b.day = d
	b.mu.Unlock()
	return d, nil
}

// PrevDay moves the selection back one day.
func (b *Board) PrevDay() Day {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.day = b.day.Prev()
	return b.day
}

// NextDay moves the selection forward one day.
func (b *Board) NextDay() Day {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.day = b.day.Next()
	return b.day
}

// View renders the selected day.
func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.ia.Expire(now)
	blocks := Blocks(b.day, b.store.List(), b.catalog, now)
	if id, ok := b.ia.Target(); ok {
		for i := range blocks {
			blocks[i].Dragging = blocks[i].Log.ID == id
		}
	}

	v := View{
		Date:   b.day.Key(),
		Today:  b.day.IsToday(now),
		State:  b.ia.State().String(),
		Height: GridHeight,
		Blocks: blocks,
	}
	if offset, ok := Marker(b.day, now); ok {
		v.Marker = &offset
	}
	return v
}

// ClickEmpty handles a click on an empty part of the grid. It returns a
// new, unsaved DefaultSpan log to open in the edit form. ok is false when
// the click follows a drag. An empty categoryID selects the first category.
func (b *Board) ClickEmpty(y float64, categoryID string) (timelog.TimeLog, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.consumeClick() {
		return timelog.TimeLog{}, false
	}
	if categoryID == "" {
		categoryID = b.catalog.First()
	}
	log := NewLogAt(b.day, y, categoryID)
	log.ID = b.newID()
	return log, true
}

// ClickBlock handles a click on a block and returns the log to edit. ok is
// false when the click follows a drag.
func (b *Board) ClickBlock(id string) (timelog.TimeLog, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.consumeClick() {
		return timelog.TimeLog{}, false, nil
	}
	log, err := b.store.Get(id)
	if err != nil {
		return timelog.TimeLog{}, false, err
	}
	return log, true, nil
}

// DragStart holds the log and begins a drag at offset y. Running logs
// cannot be dragged.
func (b *Board) DragStart(id string, y float64) (timelog.TimeLog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ia.Settle()
	if b.ia.State() == Dragging {
		return timelog.TimeLog{}, ErrDragInProgress
	}
	log, err := b.store.Hold(id)
	if err != nil {
		return timelog.TimeLog{}, err
	}
	b.ia.PointerDown(log, y)
	b.logger.Debug("drag started", "log_id", id)
	return log, nil
}

// DragMove shifts the held log to follow offset y. It returns nil when the
// snapped position did not change or the log is running.
func (b *Board) DragMove(ctx context.Context, y float64) (*timelog.TimeLog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, ok := b.ia.Target()
	if !ok {
		return nil, ErrNotDragging
	}
	start, ok := b.ia.PointerMove(y)
	if !ok {
		return nil, nil
	}
	moved, err := b.store.Shift(ctx, id, start)
	if err != nil {
		return nil, fmt.Errorf("moving log: %w", err)
	}
	return &moved, nil
}

// DragEnd releases the held log. A click arriving within ReleaseGuard is
// swallowed.
func (b *Board) DragEnd() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, ok := b.ia.Target()
	if !ok {
		return ErrNotDragging
	}
	b.ia.PointerUp(b.now())
	b.store.Release(id)
	b.logger.Debug("drag ended", "log_id", id)
	return nil
}

// State returns the interaction state.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ia.Expire(b.now())
	return b.ia.State()
}

func (b *Board) consumeClick() bool {
	b.ia.Expire(b.now())
	if b.ia.ClickAllowed() {
		return true
	}
	b.ia.Settle()
	return false
}
