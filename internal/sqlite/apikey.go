package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rpggio/chronos/internal/repository"
)

// APIKeyRepository stores hashed bearer tokens
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create stores the hash of token under name
func (r *APIKeyRepository) Create(ctx context.Context, token, name string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO api_keys (key_hash, name) VALUES (?, ?)
	`, hashToken(token), name)
	if isUniqueViolation(err) {
		return repository.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

// Resolve returns the name of the key matching token and records its use
func (r *APIKeyRepository) Resolve(ctx context.Context, token string) (string, error) {
	hash := hashToken(token)

	var name string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM api_keys WHERE key_hash = ?`, hash).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = CURRENT_TIMESTAMP WHERE key_hash = ?`, hash); err != nil {
		return "", fmt.Errorf("failed to update api key usage: %w", err)
	}
	return name, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
