// Package localstore persists time logs as a single JSON document that
// mirrors the browser build's two storage keys.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rpggio/chronos/internal/domain/timelog"
)

const (
	LogsKey     = "chronos_logs"
	ActiveIDKey = "chronos_active_log_id"
)

type document struct {
	Logs     []wireLog `json:"chronos_logs"`
	ActiveID string    `json:"chronos_active_log_id,omitempty"`
}

// wireLog uses millisecond timestamps and camelCase keys.
type wireLog struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	StartTime  int64  `json:"startTime"`
	EndTime    *int64 `json:"endTime"`
	Note       string `json:"note,omitempty"`
}

// FileStore implements timelog.Persister on a JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// New returns a FileStore writing to path.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the document. A missing file is an empty collection.
func (s *FileStore) Load(_ context.Context) ([]timelog.TimeLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}

	logs := make([]timelog.TimeLog, 0, len(doc.Logs))
	for _, w := range doc.Logs {
		log := timelog.TimeLog{
			ID:         w.ID,
			CategoryID: w.CategoryID,
			StartTime:  time.UnixMilli(w.StartTime),
			Note:       w.Note,
		}
		if w.EndTime != nil {
			log.EndTime = timelog.TimePtr(time.UnixMilli(*w.EndTime))
		}
		logs = append(logs, log)
	}
	return logs, nil
}

// Save writes the whole collection through a temp file and rename.
func (s *FileStore) Save(_ context.Context, logs []timelog.TimeLog) error {
	doc := document{Logs: make([]wireLog, 0, len(logs))}
	for _, log := range logs {
		w := wireLog{
			ID:         log.ID,
			CategoryID: log.CategoryID,
			StartTime:  log.StartTime.UnixMilli(),
			Note:       log.Note,
		}
		if log.EndTime != nil {
			end := log.EndTime.UnixMilli()
			w.EndTime = &end
		} else if doc.ActiveID == "" {
			doc.ActiveID = log.ID
		}
		doc.Logs = append(doc.Logs, w)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode time logs: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFileAtomic(s.path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
