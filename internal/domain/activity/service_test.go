package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/chronos/internal/domain/activity"
	"github.com/rpggio/chronos/internal/domain/timelog"
	"github.com/rpggio/chronos/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		LogID:        "log1",
		ActivityType: activity.TypeLogCreated,
		Summary:      "created",
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListActivityOptions{Limit: 10}).Return([]activity.ActivityEntry{}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, entry))
	require.False(t, entry.CreatedAt.IsZero())
	_, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{Limit: 10})
	require.NoError(t, err)
}

func TestActivityService_NilEntry(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.LogActivity(context.Background(), nil), activity.ErrInvalidInput)
}

func TestActivityService_ObserveMapsMutation(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeTimerStopped && e.LogID == "log1" && e.CategoryID == "2"
	})).Return(nil)

	svc := activity.NewService(repo, nil)
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	svc.Observe(ctx, timelog.Mutation{
		Kind: timelog.MutationClosed,
		Log:  timelog.TimeLog{ID: "log1", CategoryID: "2", StartTime: start, EndTime: timelog.TimePtr(start.Add(time.Hour))},
	})
	repo.AssertExpectations(t)
}

func TestActivityService_ObserveSwallowsErrors(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, mock.Anything).Return(errors.New("db closed"))

	svc := activity.NewService(repo, nil)
	require.NotPanics(t, func() {
		svc.Observe(ctx, timelog.Mutation{Kind: timelog.MutationDeleted, Log: timelog.TimeLog{ID: "x"}})
	})
}
