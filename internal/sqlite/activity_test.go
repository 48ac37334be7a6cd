package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/chronos/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	entry1 := &activity.ActivityEntry{
		LogID:        "l1",
		CategoryID:   "1",
		ActivityType: activity.TypeTimerStarted,
		Summary:      "Started Deep Work",
		Details:      `{"id":"l1"}`,
	}
	entry2 := &activity.ActivityEntry{
		LogID:        "l1",
		ActivityType: activity.TypeTimerStopped,
		Summary:      "Stopped Deep Work",
	}

	require.NoError(t, repo.Log(ctx, entry1))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypeTimerStopped, entries[0].ActivityType)
	require.Empty(t, entries[0].Details)
	require.Equal(t, activity.TypeTimerStarted, entries[1].ActivityType)
	require.Equal(t, "1", entries[1].CategoryID)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	for i, logID := range []string{"a", "b", "a"} {
		typ := activity.TypeLogCreated
		if i == 2 {
			typ = activity.TypeLogDeleted
		}
		require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
			LogID:        logID,
			ActivityType: typ,
			Summary:      "entry",
			CreatedAt:    time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	logID := "a"
	entries, err := repo.List(ctx, activity.ListActivityOptions{LogID: &logID})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	deleted := activity.TypeLogDeleted
	entries, err = repo.List(ctx, activity.ListActivityOptions{LogID: &logID, ActivityType: &deleted})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "b", entries[0].LogID)
}
