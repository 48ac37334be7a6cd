package integration_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/chronos/internal/domain/activity"
	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/entry"
	"github.com/rpggio/chronos/internal/domain/report"
	"github.com/rpggio/chronos/internal/domain/schedule"
	"github.com/rpggio/chronos/internal/domain/stats"
	"github.com/rpggio/chronos/internal/domain/timelog"
	"github.com/rpggio/chronos/internal/domain/timer"
	"github.com/rpggio/chronos/internal/localstore"
	"github.com/rpggio/chronos/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db      *sqlite.DB
	logRepo *sqlite.TimeLogRepository
	catalog category.Catalog
	clock   *time.Time

	store       *timelog.Store
	activitySvc *activity.Service
	timerSvc    *timer.Service
	entrySvc    *entry.Service
	board       *schedule.Board
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	catalog, err := category.NewService(sqlite.NewCategoryRepository(db), nil).List(ctx)
	require.NoError(t, err)

	clock := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	env := &testEnv{
		db:          db,
		logRepo:     sqlite.NewTimeLogRepository(db),
		catalog:     catalog,
		clock:       &clock,
		activitySvc: activity.NewService(sqlite.NewActivityRepository(db), nil),
	}
	env.store = env.openStore(ctx)
	env.timerSvc = timer.NewService(env.store, nil, timer.WithClock(now))
	env.entrySvc = entry.NewService(env.store, time.UTC, nil)
	env.board = schedule.NewBoard(env.store, catalog, time.UTC, nil, schedule.WithClock(now))
	return env
}

// openStore loads a fresh store from the database, as a restart would.
func (e *testEnv) openStore(ctx context.Context) *timelog.Store {
	store := timelog.NewStore(e.logRepo, nil, timelog.WithObserver(e.activitySvc))
	store.Load(ctx)
	return store
}

func (e *testEnv) advance(d time.Duration) {
	*e.clock = e.clock.Add(d)
}

func (e *testEnv) activityTypes(t *testing.T) []activity.ActivityType {
	t.Helper()
	entries, err := e.activitySvc.GetRecentActivity(context.Background(), activity.ListActivityOptions{Limit: 100})
	require.NoError(t, err)
	types := make([]activity.ActivityType, 0, len(entries))
	for _, a := range entries {
		types = append(types, a.ActivityType)
	}
	return types
}

func TestIntegration_TrackingWorkflow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	learning, err := env.timerSvc.Start(ctx, "2")
	require.NoError(t, err)
	env.advance(60 * time.Minute)

	// Starting another category closes the running log first.
	deep, err := env.timerSvc.Start(ctx, "1")
	require.NoError(t, err)
	closed, err := env.store.Get(learning.ID)
	require.NoError(t, err)
	require.False(t, closed.Running())
	require.Equal(t, time.Hour, closed.Duration())

	env.advance(30 * time.Minute)
	stopped, err := env.timerSvc.Stop(ctx)
	require.NoError(t, err)
	require.Equal(t, deep.ID, stopped.ID)

	summary := stats.Summarize(env.store.List(), env.catalog, *env.clock, time.UTC)
	require.Equal(t, 1.5, summary.TotalHours)
	require.Equal(t, "Learning", summary.TopFocus)
	require.Len(t, summary.Daily, 7)
	require.Equal(t, 1.5, summary.Daily[6].Hours)

	stoppedType := activity.TypeTimerStopped
	stops, err := env.activitySvc.GetRecentActivity(ctx, activity.ListActivityOptions{ActivityType: &stoppedType})
	require.NoError(t, err)
	require.Len(t, stops, 2)

	reopened := env.openStore(ctx)
	require.Len(t, reopened.List(), 2)
	_, running := reopened.Active()
	require.False(t, running)
}

func TestIntegration_RunningLogSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	started, err := env.timerSvc.Start(ctx, "4")
	require.NoError(t, err)

	reopened := env.openStore(ctx)
	active, ok := reopened.Active()
	require.True(t, ok)
	require.Equal(t, started.ID, active.ID)

	// The reopened store rejects a second running log.
	_, err = reopened.Insert(ctx, timelog.TimeLog{ID: "other", CategoryID: "1", StartTime: *env.clock})
	require.ErrorIs(t, err, timelog.ErrAlreadyActive)
}

func TestIntegration_EditDragAndDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	saved, created, err := env.entrySvc.Save(ctx, entry.Form{
		CategoryID: "3",
		Date:       "2026-03-10",
		Start:      "14:00",
		End:        "15:00",
	})
	require.NoError(t, err)
	require.True(t, created)

	_, err = env.board.Open("2026-03-10")
	require.NoError(t, err)
	view := env.board.View()
	require.Len(t, view.Blocks, 1)
	require.False(t, view.Today)

	startY := 14 * schedule.PixelsPerHour
	_, err = env.board.DragStart(saved.ID, startY)
	require.NoError(t, err)

	// Edits are refused while the log is held by a drag.
	_, _, err = env.entrySvc.Save(ctx, entry.Form{ID: saved.ID, CategoryID: "3", Date: "2026-03-10", Start: "08:00", End: "09:00"})
	require.ErrorIs(t, err, timelog.ErrLogHeld)

	moved, err := env.board.DragMove(ctx, startY+30*schedule.PixelsPerMinute)
	require.NoError(t, err)
	require.NotNil(t, moved)
	require.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC), moved.StartTime)
	require.Equal(t, time.Hour, moved.Duration())
	require.NoError(t, env.board.DragEnd())

	// The click right after a drag is swallowed. Once the guard has
	// passed, clicks open a preset again.
	_, opened := env.board.ClickEmpty(startY, "")
	require.False(t, opened)
	env.advance(schedule.ReleaseGuard)
	preset, opened := env.board.ClickEmpty(startY, "")
	require.True(t, opened)
	require.Equal(t, env.catalog.First(), preset.CategoryID)

	updated, created, err := env.entrySvc.Save(ctx, entry.Form{
		ID:         saved.ID,
		CategoryID: "3",
		Date:       "2026-03-10",
		Start:      "14:30",
		End:        "16:00",
		Note:       "inbox zero",
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, 90*time.Minute, updated.Duration())

	require.NoError(t, env.entrySvc.Delete(ctx, saved.ID))
	_, err = env.store.Get(saved.ID)
	require.ErrorIs(t, err, timelog.ErrLogNotFound)

	require.Equal(t, []activity.ActivityType{
		activity.TypeLogDeleted,
		activity.TypeLogUpdated,
		activity.TypeLogMoved,
		activity.TypeLogCreated,
	}, env.activityTypes(t))

	require.Empty(t, env.openStore(ctx).List())
}

func TestIntegration_DragCannotLockRunningTimer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	started, err := env.timerSvc.Start(ctx, "1")
	require.NoError(t, err)

	_, err = env.board.DragStart(started.ID, 9*schedule.PixelsPerHour)
	require.ErrorIs(t, err, timelog.ErrLogRunning)
	require.Empty(t, env.store.Held())

	env.advance(20 * time.Minute)
	stopped, err := env.timerSvc.Stop(ctx)
	require.NoError(t, err)
	require.Equal(t, started.ID, stopped.ID)
	_, err = env.timerSvc.Start(ctx, "2")
	require.NoError(t, err)
}

func TestIntegration_FileStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chronos.json")
	clock := time.Date(2026, 3, 11, 22, 0, 0, 0, time.UTC)

	store := timelog.NewStore(localstore.New(path), nil)
	store.Load(ctx)
	timerSvc := timer.NewService(store, nil, timer.WithClock(func() time.Time { return clock }))

	_, err := timerSvc.QuickLog(ctx, "6", 90)
	require.NoError(t, err)
	started, err := timerSvc.Start(ctx, "5")
	require.NoError(t, err)

	reopened := timelog.NewStore(localstore.New(path), nil)
	reopened.Load(ctx)
	require.Len(t, reopened.List(), 2)
	active, ok := reopened.Active()
	require.True(t, ok)
	require.Equal(t, started.ID, active.ID)
}

type promptRecorder struct {
	prompt string
}

func (p *promptRecorder) Generate(_ context.Context, _, prompt string) (string, error) {
	p.prompt = prompt
	return "## The Vibe\nSteady.", nil
}

func TestIntegration_ReportFromTrackedTime(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.timerSvc.QuickLog(ctx, "2", 45)
	require.NoError(t, err)
	// Too short to be reported.
	_, err = env.timerSvc.QuickLog(ctx, "5", 3)
	require.NoError(t, err)

	model := &promptRecorder{}
	svc := report.NewService(model, time.UTC, nil)
	text := svc.Generate(ctx, env.store.List(), env.catalog)
	require.Equal(t, "## The Vibe\nSteady.", text)
	require.Contains(t, model.prompt, "Category: Learning, Duration: 00:45:00")
	require.NotContains(t, model.prompt, "Leisure")
	require.False(t, svc.Loading())
}
