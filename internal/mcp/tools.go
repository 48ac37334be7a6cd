package mcp

import (
	"context"
	"encoding/json"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	ReadOnly    bool           `json:"-"`
}

func object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Categories
		{
			Name:        "list_categories",
			Description: "List the fixed activity categories with their colors and icons",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},

		// Timer
		{
			Name:        "start_timer",
			Description: "Start tracking a category now. A running timer is stopped first",
			InputSchema: object(map[string]any{
				"category_id": prop("string", "Category ID (omit for the first category)"),
			}),
		},
		{
			Name:        "stop_timer",
			Description: "Stop the running timer. Does nothing when no timer is running",
			InputSchema: object(map[string]any{}),
		},
		{
			Name:        "get_timer",
			Description: "Get the running log and its elapsed time as HH:MM:SS",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "quick_log",
			Description: "Record a finished block of minutes ending now, noted as a manual entry",
			InputSchema: object(map[string]any{
				"category_id": prop("string", "Category ID (omit for the first category)"),
				"minutes":     prop("integer", "Length of the block, usually 15, 30 or 60"),
			}, "minutes"),
		},

		// Logs
		{
			Name:        "list_logs",
			Description: "List time logs, newest first",
			InputSchema: object(map[string]any{
				"limit":  prop("integer", "Maximum logs to return"),
				"offset": prop("integer", "Logs to skip"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "get_history",
			Description: "Get the timeline of logs grouped by local start date, newest date first",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "get_log",
			Description: "Get one time log by id",
			InputSchema: object(map[string]any{
				"id": prop("string", "Log ID"),
			}, "id"),
			ReadOnly: true,
		},
		{
			Name:        "new_log_form",
			Description: "Open a blank edit form for a new log: today, 09:00 to 09:30",
			InputSchema: object(map[string]any{
				"category_id": prop("string", "Category ID (omit for the first category)"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "save_log",
			Description: "Save the manual edit form. An end clock earlier than the start clock ends on the next day",
			InputSchema: object(map[string]any{
				"id":          prop("string", "Log ID to replace (omit to create a new log)"),
				"category_id": prop("string", "Category ID"),
				"date":        prop("string", "Start date as YYYY-MM-DD"),
				"start":       prop("string", "Start clock as HH:MM"),
				"end":         prop("string", "End clock as HH:MM"),
				"note":        prop("string", "Free text note"),
			}, "category_id", "date", "start", "end"),
		},
		{
			Name:        "delete_log",
			Description: "Delete a time log. Deleting the running log stops tracking",
			InputSchema: object(map[string]any{
				"id": prop("string", "Log ID"),
			}, "id"),
		},

		// Statistics
		{
			Name:        "get_statistics",
			Description: "Get hours per category, the last seven days of hours, total hours and top focus",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},

		// Day grid
		{
			Name:        "get_day_grid",
			Description: "Render the 24-hour day grid. Selects a date or steps one day before rendering",
			InputSchema: object(map[string]any{
				"date": prop("string", "Day to select as YYYY-MM-DD"),
				"move": map[string]any{
					"type":        "string",
					"enum":        []string{"prev", "next"},
					"description": "Step the selected day",
				},
			}),
		},
		{
			Name:        "grid_click",
			Description: "Click an empty grid slot. Returns a 30 minute form at the snapped time, or opened=false right after a drag",
			InputSchema: object(map[string]any{
				"y":           prop("number", "Vertical offset in grid pixels (1.5 per minute)"),
				"category_id": prop("string", "Category for the new log (omit for the first category)"),
				"commit":      prop("boolean", "Save the new log immediately"),
			}, "y"),
		},
		{
			Name:        "block_click",
			Description: "Click a log block. Returns its edit form, or opened=false right after a drag",
			InputSchema: object(map[string]any{
				"id": prop("string", "Log ID"),
			}, "id"),
		},
		{
			Name:        "drag_start",
			Description: "Press on a log block to begin dragging it",
			InputSchema: object(map[string]any{
				"id": prop("string", "Log ID"),
				"y":  prop("number", "Pointer offset in grid pixels"),
			}, "id", "y"),
		},
		{
			Name:        "drag_move",
			Description: "Move the pointer during a drag. The log shifts in 5 minute steps keeping its duration",
			InputSchema: object(map[string]any{
				"y": prop("number", "Pointer offset in grid pixels"),
			}, "y"),
		},
		{
			Name:        "drag_end",
			Description: "Release the dragged block. The next click is swallowed",
			InputSchema: object(map[string]any{}),
		},

		// Report
		{
			Name:        "generate_report",
			Description: "Ask the AI coach for a weekly report in markdown. Always returns text",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},

		// Activity
		{
			Name:        "get_recent_activity",
			Description: "List recent store changes, newest first",
			InputSchema: object(map[string]any{
				"log_id": prop("string", "Only changes to this log"),
				"activity_type": map[string]any{
					"type":        "string",
					"enum":        []string{"timer_started", "timer_stopped", "log_created", "log_updated", "log_moved", "log_deleted"},
					"description": "Only changes of this type",
				},
				"limit":  prop("integer", "Maximum entries to return"),
				"offset": prop("integer", "Entries to skip"),
			}),
			ReadOnly: true,
		},
	}
}

// registerTools exposes every catalog entry as an SDK tool backed by h.
func registerTools(server *sdkmcp.Server, h *Handler) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
			Annotations: &sdkmcp.ToolAnnotations{ReadOnlyHint: def.ReadOnly},
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			result, err := h.Handle(ctx, name, args)
			if err != nil {
				h.logger.Debug("tool call failed", "tool", name, "caller", getCaller(ctx), "error", err)
				return toolError(err), nil
			}
			return toolResult(result)
		})
	}
}

func toolResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

// toolError reports a failed call in the result so the model can read it.
func toolError(err error) *sdkmcp.CallToolResult {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
