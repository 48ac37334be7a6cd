package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/chronos/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_CreateResolve(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "secret-token", "laptop"))
	require.ErrorIs(t, repo.Create(ctx, "secret-token", "again"), repository.ErrAlreadyExists)

	name, err := repo.Resolve(ctx, "secret-token")
	require.NoError(t, err)
	require.Equal(t, "laptop", name)

	var lastUsed *string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT last_used FROM api_keys`).Scan(&lastUsed))
	require.NotNil(t, lastUsed)

	_, err = repo.Resolve(ctx, "wrong")
	require.ErrorIs(t, err, repository.ErrNotFound)

	var stored string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT key_hash FROM api_keys`).Scan(&stored))
	require.NotEqual(t, "secret-token", stored)
}
