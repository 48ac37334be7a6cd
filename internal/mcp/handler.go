package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/chronos/internal/domain/activity"
	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/entry"
	"github.com/rpggio/chronos/internal/domain/stats"
	"github.com/rpggio/chronos/internal/domain/timelog"
	"github.com/rpggio/chronos/internal/domain/timer"
)

// Handler dispatches tool calls to domain services.
type Handler struct {
	svc    Services
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithClock overrides the handler's time source.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates a new MCP handler. Dates are interpreted in loc.
func NewHandler(svc Services, loc *time.Location, logger *slog.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if loc == nil {
		loc = time.Local
	}
	h := &Handler{svc: svc, loc: loc, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle dispatches a request to domain services.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "list_categories":
		catalog, err := h.catalog(ctx)
		if err != nil {
			return nil, err
		}
		return catalog, nil
	case "start_timer":
		var req StartTimerParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		catalog, categoryID, err := h.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		log, err := h.svc.Timer.Start(ctx, categoryID)
		if err != nil {
			return nil, mapError(err)
		}
		return h.timerResponse(log, catalog), nil
	case "stop_timer":
		stopped, err := h.svc.Timer.Stop(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		resp := StopTimerResponse{}
		if stopped != nil {
			catalog, err := h.catalog(ctx)
			if err != nil {
				return nil, err
			}
			r := h.logResponse(*stopped, catalog)
			resp.Stopped = &r
		}
		return resp, nil
	case "get_timer":
		catalog, err := h.catalog(ctx)
		if err != nil {
			return nil, err
		}
		active, _ := h.svc.Timer.Active()
		return h.timerResponse(active, catalog), nil
	case "quick_log":
		var req QuickLogParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		catalog, categoryID, err := h.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		log, err := h.svc.Timer.QuickLog(ctx, categoryID, req.Minutes)
		if err != nil {
			return nil, mapError(err)
		}
		return h.logResponse(*log, catalog), nil
	case "list_logs":
		var req ListLogsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		catalog, err := h.catalog(ctx)
		if err != nil {
			return nil, err
		}
		logs := paginate(h.svc.Logs.List(), req.Limit, req.Offset)
		resp := make([]LogResponse, 0, len(logs))
		for _, log := range logs {
			resp = append(resp, h.logResponse(log, catalog))
		}
		return resp, nil
	case "get_history":
		catalog, err := h.catalog(ctx)
		if err != nil {
			return nil, err
		}
		return stats.History(h.svc.Logs.List(), catalog, h.now(), h.loc), nil
	case "get_log":
		var req LogIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		log, err := h.svc.Logs.Get(req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		catalog, err := h.catalog(ctx)
		if err != nil {
			return nil, err
		}
		return h.logResponse(log, catalog), nil
	case "new_log_form":
		var req NewLogFormParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		_, categoryID, err := h.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		form := entry.Blank(h.now(), h.loc, categoryID)
		return FormResponse{Opened: true, Form: &form}, nil
	case "save_log":
		var form entry.Form
		if err := decodeParams(params, &form); err != nil {
			return nil, err
		}
		catalog, err := h.requireCategory(ctx, form.CategoryID)
		if err != nil {
			return nil, err
		}
		saved, created, err := h.svc.Entries.Save(ctx, form)
		if err != nil {
			return nil, mapError(err)
		}
		return SaveLogResponse{Log: h.logResponse(*saved, catalog), Created: created}, nil
	case "delete_log":
		var req LogIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.svc.Entries.Delete(ctx, req.ID); err != nil {
			return nil, mapError(err)
		}
		return DeleteLogResponse{Deleted: req.ID}, nil
	case "get_statistics":
		catalog, err := h.catalog(ctx)
		if err != nil {
			return nil, err
		}
		return stats.Summarize(h.svc.Logs.List(), catalog, h.now(), h.loc), nil
	case "get_day_grid":
		var req GetDayGridParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.Date != "" {
			if _, err := h.svc.Board.Open(req.Date); err != nil {
				return nil, mapError(err)
			}
		}
		switch req.Move {
		case "":
		case "prev":
			h.svc.Board.PrevDay()
		case "next":
			h.svc.Board.NextDay()
		default:
			return nil, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("unknown move %q", req.Move), RecoveryHint: "Use prev or next"}
		}
		return h.svc.Board.View(), nil
	case "grid_click":
		var req GridClickParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.CategoryID != "" {
			if _, err := h.requireCategory(ctx, req.CategoryID); err != nil {
				return nil, err
			}
		}
		preset, ok := h.svc.Board.ClickEmpty(req.Y, req.CategoryID)
		if !ok {
			return FormResponse{}, nil
		}
		form := entry.FromLog(preset, h.now(), h.loc)
		resp := FormResponse{Opened: true, Form: &form}
		if req.Commit {
			saved, _, err := h.svc.Entries.Save(ctx, form)
			if err != nil {
				return nil, mapError(err)
			}
			catalog, err := h.catalog(ctx)
			if err != nil {
				return nil, err
			}
			r := h.logResponse(*saved, catalog)
			resp.Saved = &r
		}
		return resp, nil
	case "block_click":
		var req LogIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		log, ok, err := h.svc.Board.ClickBlock(req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		if !ok {
			return FormResponse{}, nil
		}
		form := entry.FromLog(log, h.now(), h.loc)
		return FormResponse{Opened: true, Form: &form}, nil
	case "drag_start":
		var req DragStartParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		log, err := h.svc.Board.DragStart(req.ID, req.Y)
		if err != nil {
			return nil, mapError(err)
		}
		catalog, err := h.catalog(ctx)
		if err != nil {
			return nil, err
		}
		r := h.logResponse(log, catalog)
		return DragResponse{Log: &r, State: h.svc.Board.State().String()}, nil
	case "drag_move":
		var req DragMoveParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		moved, err := h.svc.Board.DragMove(ctx, req.Y)
		if err != nil {
			return nil, mapError(err)
		}
		resp := DragResponse{Moved: moved != nil, State: h.svc.Board.State().String()}
		if moved != nil {
			catalog, err := h.catalog(ctx)
			if err != nil {
				return nil, err
			}
			r := h.logResponse(*moved, catalog)
			resp.Log = &r
		}
		return resp, nil
	case "drag_end":
		if err := h.svc.Board.DragEnd(); err != nil {
			return nil, mapError(err)
		}
		return DragResponse{State: h.svc.Board.State().String()}, nil
	case "generate_report":
		catalog, err := h.catalog(ctx)
		if err != nil {
			return nil, err
		}
		return ReportResponse{Report: h.svc.Reports.Generate(ctx, h.svc.Logs.List(), catalog)}, nil
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		entries, err := h.svc.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{
			LogID:        req.LogID,
			ActivityType: req.ActivityType,
			Limit:        req.Limit,
			Offset:       req.Offset,
		})
		if err != nil {
			return nil, mapError(err)
		}
		resp := make([]ActivityEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, ActivityEntryResponse{
				Timestamp:  e.CreatedAt,
				Type:       e.ActivityType,
				LogID:      e.LogID,
				CategoryID: e.CategoryID,
				Summary:    e.Summary,
				Details:    e.Details,
			})
		}
		return resp, nil
	default:
		return nil, mapError(fmt.Errorf("%w: %s", ErrUnknownMethod, method))
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check parameter types"}
	}
	return nil
}

func (h *Handler) catalog(ctx context.Context) (category.Catalog, error) {
	catalog, err := h.svc.Categories.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return catalog, nil
}

// resolveCategory defaults an empty id to the first category and rejects
// ids outside the catalog.
func (h *Handler) resolveCategory(ctx context.Context, id string) (category.Catalog, string, error) {
	catalog, err := h.catalog(ctx)
	if err != nil {
		return nil, "", err
	}
	if id == "" {
		id = catalog.First()
	}
	if _, ok := catalog.Lookup(id); !ok {
		return nil, "", mapError(fmt.Errorf("%w: %q", category.ErrCategoryNotFound, id))
	}
	return catalog, id, nil
}

func (h *Handler) requireCategory(ctx context.Context, id string) (category.Catalog, error) {
	if id == "" {
		return nil, mapError(entry.ErrMissingCategory)
	}
	catalog, _, err := h.resolveCategory(ctx, id)
	return catalog, err
}

func (h *Handler) logResponse(log timelog.TimeLog, catalog category.Catalog) LogResponse {
	cat, _ := catalog.Lookup(log.CategoryID)
	d := log.DurationAt(h.now())
	return LogResponse{
		TimeLog:    log,
		Category:   cat,
		DurationMS: d.Milliseconds(),
		Duration:   timer.FormatDuration(d),
	}
}

func (h *Handler) timerResponse(active *timelog.TimeLog, catalog category.Catalog) TimerResponse {
	if active == nil {
		return TimerResponse{Elapsed: timer.FormatDuration(0)}
	}
	r := h.logResponse(*active, catalog)
	return TimerResponse{Running: true, Log: &r, ElapsedMS: r.DurationMS, Elapsed: r.Duration}
}

func paginate(logs []timelog.TimeLog, limit, offset int) []timelog.TimeLog {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(logs) {
		return nil
	}
	logs = logs[offset:]
	if limit > 0 && limit < len(logs) {
		logs = logs[:limit]
	}
	return logs
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
