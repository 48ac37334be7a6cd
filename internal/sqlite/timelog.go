package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/chronos/internal/domain/timelog"
)

const activeLogKey = "active_log_id"

// TimeLogRepository implements timelog.Persister for SQLite. Every save
// replaces the whole table in one transaction, keeping the store's order in
// the position column.
type TimeLogRepository struct {
	db *DB
}

// NewTimeLogRepository creates a new TimeLogRepository
func NewTimeLogRepository(db *DB) *TimeLogRepository {
	return &TimeLogRepository{db: db}
}

// Load reads every log in store order
func (r *TimeLogRepository) Load(ctx context.Context) ([]timelog.TimeLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category_id, start_ms, end_ms, note
		FROM time_logs
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load time logs: %w", err)
	}
	defer rows.Close()

	var logs []timelog.TimeLog
	for rows.Next() {
		var (
			log     timelog.TimeLog
			startMS int64
			endMS   sql.NullInt64
		)
		if err := rows.Scan(&log.ID, &log.CategoryID, &startMS, &endMS, &log.Note); err != nil {
			return nil, fmt.Errorf("failed to scan time log: %w", err)
		}
		log.StartTime = time.UnixMilli(startMS)
		if endMS.Valid {
			log.EndTime = timelog.TimePtr(time.UnixMilli(endMS.Int64))
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time log rows: %w", err)
	}
	return logs, nil
}

// Save replaces the stored logs with logs and mirrors the running log's id
// under the active_log_id key
func (r *TimeLogRepository) Save(ctx context.Context, logs []timelog.TimeLog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM time_logs`); err != nil {
		return fmt.Errorf("failed to clear time logs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO time_logs (id, category_id, start_ms, end_ms, note, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	activeID := ""
	for i, log := range logs {
		var endMS sql.NullInt64
		if log.EndTime != nil {
			endMS = sql.NullInt64{Int64: log.EndTime.UnixMilli(), Valid: true}
		} else if activeID == "" {
			activeID = log.ID
		}
		if _, err := stmt.ExecContext(ctx, log.ID, log.CategoryID, log.StartTime.UnixMilli(), endMS, log.Note, i); err != nil {
			return fmt.Errorf("failed to insert time log %s: %w", log.ID, err)
		}
	}

	if activeID == "" {
		_, err = tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, activeLogKey)
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, activeLogKey, activeID)
	}
	if err != nil {
		return fmt.Errorf("failed to write active log id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

// ActiveLogID returns the mirrored id of the running log, or "" when none
func (r *TimeLogRepository) ActiveLogID(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, activeLogKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read active log id: %w", err)
	}
	return id, nil
}
