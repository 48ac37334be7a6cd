package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/schedule"
	"github.com/rpggio/chronos/internal/domain/timelog"
)

// Timer is the timer controller surface the terminal client drives.
type Timer interface {
	Start(ctx context.Context, categoryID string) (*timelog.TimeLog, error)
	Stop(ctx context.Context) (*timelog.TimeLog, error)
	QuickLog(ctx context.Context, categoryID string, minutes int) (*timelog.TimeLog, error)
	Active() (*timelog.TimeLog, bool)
	Watch(ctx context.Context, interval time.Duration) <-chan time.Duration
}

// Logs is the read side of the store.
type Logs interface {
	List() []timelog.TimeLog
}

// Board is the day grid shown on the day tab.
type Board interface {
	PrevDay() schedule.Day
	NextDay() schedule.Day
	View() schedule.View
	WatchMarker(ctx context.Context, interval time.Duration) <-chan schedule.MarkerTick
}

// Reports generates the weekly report.
type Reports interface {
	Generate(ctx context.Context, logs []timelog.TimeLog, catalog category.Catalog) string
	Loading() bool
}

// Services are the domain services behind the terminal client.
type Services struct {
	Timer   Timer
	Logs    Logs
	Board   Board
	Reports Reports
}

// Tab selects the main panel.
type Tab int

const (
	TrackTab Tab = iota
	DayTab
	HistoryTab
	StatsTab
	tabCount
)

// Refresh rates of the elapsed clock and the day grid's current-time marker.
const (
	ElapsedInterval = time.Second
	MarkerInterval  = time.Minute
)

type elapsedMsg time.Duration

type markerMsg schedule.MarkerTick

type reportMsg string

// actionMsg reports the outcome of a store mutation.
type actionMsg struct {
	status string
	err    error
}

// Model is the bubbletea model of the terminal client.
type Model struct {
	ctx     context.Context
	svc     Services
	catalog category.Catalog
	loc     *time.Location
	now     func() time.Time
	keys    KeyMap

	elapsed <-chan time.Duration
	markers <-chan schedule.MarkerTick

	cursor  int
	tab     Tab
	status  string
	err     error
	width   int
	running time.Duration
	marker  schedule.MarkerTick
	report  string
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// NewModel creates the client and starts watching the timer and the day
// grid marker until ctx is done. The cursor starts on the running log's
// category, or the first category.
func NewModel(ctx context.Context, svc Services, catalog category.Catalog, loc *time.Location, opts ...Option) Model {
	if loc == nil {
		loc = time.Local
	}
	m := Model{
		ctx:     ctx,
		svc:     svc,
		catalog: catalog,
		loc:     loc,
		now:     time.Now,
		keys:    DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if active, ok := svc.Timer.Active(); ok {
		for i, cat := range catalog {
			if cat.ID == active.CategoryID {
				m.cursor = i
			}
		}
	}
	m.elapsed = svc.Timer.Watch(ctx, ElapsedInterval)
	m.markers = svc.Board.WatchMarker(ctx, MarkerInterval)
	return m
}

func waitElapsed(ch <-chan time.Duration) tea.Cmd {
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return nil
		}
		return elapsedMsg(d)
	}
}

func waitMarker(ch <-chan schedule.MarkerTick) tea.Cmd {
	return func() tea.Msg {
		tick, ok := <-ch
		if !ok {
			return nil
		}
		return markerMsg(tick)
	}
}

// Init starts listening to the timer and marker watches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitElapsed(m.elapsed), waitMarker(m.markers))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case elapsedMsg:
		m.running = time.Duration(msg)
		return m, waitElapsed(m.elapsed)
	case markerMsg:
		m.marker = schedule.MarkerTick(msg)
		return m, waitMarker(m.markers)
	case reportMsg:
		m.report = string(msg)
		m.status = "Report ready"
	case actionMsg:
		m.status, m.err = msg.status, msg.err
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.tab = (m.tab + 1) % tabCount
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.catalog)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.PrevDay):
			if m.tab == DayTab {
				m.svc.Board.PrevDay()
			}
		case key.Matches(msg, m.keys.NextDay):
			if m.tab == DayTab {
				m.svc.Board.NextDay()
			}
		case key.Matches(msg, m.keys.Report):
			if m.svc.Reports.Loading() {
				return m, nil
			}
			m.tab = StatsTab
			return m, m.generateReport()
		case key.Matches(msg, m.keys.Start):
			return m, m.start(m.selected())
		case key.Matches(msg, m.keys.Stop):
			return m, m.stop()
		case key.Matches(msg, m.keys.Quick15):
			return m, m.quickLog(m.selected(), 15)
		case key.Matches(msg, m.keys.Quick30):
			return m, m.quickLog(m.selected(), 30)
		case key.Matches(msg, m.keys.Quick60):
			return m, m.quickLog(m.selected(), 60)
		}
	}
	return m, nil
}

func (m Model) selected() category.Category {
	if m.cursor < len(m.catalog) {
		return m.catalog[m.cursor]
	}
	return category.Unknown
}

func (m Model) start(cat category.Category) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.Timer.Start(m.ctx, cat.ID); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Tracking " + cat.Name}
	}
}

func (m Model) stop() tea.Cmd {
	return func() tea.Msg {
		stopped, err := m.svc.Timer.Stop(m.ctx)
		if err != nil {
			return actionMsg{err: err}
		}
		if stopped == nil {
			return actionMsg{status: "No timer running"}
		}
		return actionMsg{status: "Stopped " + m.catalog.Name(stopped.CategoryID)}
	}
}

func (m Model) quickLog(cat category.Category, minutes int) tea.Cmd {
	return func() tea.Msg {
		log, err := m.svc.Timer.QuickLog(m.ctx, cat.ID, minutes)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Logged " + formatMinutes(log.Duration()) + " of " + cat.Name}
	}
}

func (m Model) generateReport() tea.Cmd {
	logs := m.svc.Logs.List()
	return func() tea.Msg {
		return reportMsg(m.svc.Reports.Generate(m.ctx, logs, m.catalog))
	}
}

// Run starts the terminal client and blocks until it exits.
func Run(ctx context.Context, m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
