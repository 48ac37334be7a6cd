package report

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/timelog"
)

const (
	// EmptyReport is returned when the model answers with no text.
	EmptyReport = "Could not generate report."
	// Apology is returned for a missing credential or any model error.
	Apology = "Sorry, I couldn't generate your report at this time. Please check your API key or try again later."
)

// Model generates text from a system instruction and a user prompt.
type Model interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Service produces the weekly report. Failures never surface as errors;
// callers always get text to show.
type Service struct {
	model    Model
	loc      *time.Location
	logger   *slog.Logger
	inflight atomic.Int32
}

// NewService creates a report service. A nil model behaves as a missing
// API key.
func NewService(model Model, loc *time.Location, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{model: model, loc: loc, logger: logger}
}

// Loading reports whether a Generate call is in progress.
func (s *Service) Loading() bool {
	return s.inflight.Load() > 0
}

// Generate asks the model for a report over logs. There is no retry; call
// again to regenerate.
func (s *Service) Generate(ctx context.Context, logs []timelog.TimeLog, catalog category.Catalog) string {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	if s.model == nil {
		s.logger.Error("error generating report", "error", ErrMissingAPIKey)
		return Apology
	}

	text, err := s.model.Generate(ctx, SystemPrompt, Prompt(logs, catalog, s.loc))
	if err != nil {
		s.logger.Error("error generating report", "error", err)
		return Apology
	}
	if strings.TrimSpace(text) == "" {
		return EmptyReport
	}
	return text
}
