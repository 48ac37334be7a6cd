package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/entry"
	"github.com/rpggio/chronos/internal/domain/schedule"
	"github.com/rpggio/chronos/internal/domain/timelog"
	"github.com/rpggio/chronos/internal/domain/timer"
	"github.com/rpggio/chronos/internal/repository"
)

// ErrUnknownMethod is returned for a method name no tool handles.
var ErrUnknownMethod = errors.New("unknown method")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, timelog.ErrLogNotFound):
		return &APIError{Code: "LOG_NOT_FOUND", Message: "time log not found", RecoveryHint: "Call list_logs for valid ids"}
	case errors.Is(err, category.ErrCategoryNotFound):
		return &APIError{Code: "CATEGORY_NOT_FOUND", Message: "category not found", RecoveryHint: "Call list_categories for valid ids"}
	case errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, timelog.ErrAlreadyActive):
		return &APIError{Code: "ALREADY_ACTIVE", Message: "another log is running", RecoveryHint: "Call stop_timer first"}
	case errors.Is(err, timelog.ErrInvalidRange):
		return &APIError{Code: "INVALID_RANGE", Message: "end time is before start time", RecoveryHint: "Check start and end"}
	case errors.Is(err, timelog.ErrLogHeld):
		return &APIError{Code: "LOG_HELD", Message: "log is being dragged", RecoveryHint: "Call drag_end first"}
	case errors.Is(err, timelog.ErrLogRunning):
		return &APIError{Code: "LOG_RUNNING", Message: "running logs cannot be moved", RecoveryHint: "Stop the timer first"}
	case errors.Is(err, timelog.ErrDuplicateID):
		return &APIError{Code: "DUPLICATE_ID", Message: "a log with this id already exists"}
	case errors.Is(err, timelog.ErrInvalidInput), errors.Is(err, timer.ErrInvalidDuration),
		errors.Is(err, entry.ErrInvalidDate), errors.Is(err, entry.ErrInvalidClock), errors.Is(err, entry.ErrMissingCategory):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check parameter formats"}
	case errors.Is(err, schedule.ErrInvalidDay):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Use YYYY-MM-DD"}
	case errors.Is(err, schedule.ErrDragInProgress):
		return &APIError{Code: "DRAG_IN_PROGRESS", Message: "a drag is already in progress", RecoveryHint: "Call drag_end first"}
	case errors.Is(err, schedule.ErrNotDragging):
		return &APIError{Code: "NOT_DRAGGING", Message: "no drag in progress", RecoveryHint: "Call drag_start first"}
	case errors.Is(err, ErrUnknownMethod):
		return &APIError{Code: "UNKNOWN_METHOD", Message: err.Error()}
	default:
		return nil
	}
}
