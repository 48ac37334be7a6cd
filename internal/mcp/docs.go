package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `chronos is a Lyubishchev-style time tracker: every interval of the day is logged against one of a few fixed categories.

Core concepts:
- Category: fixed set (Deep Work, Learning, Routine, Health, Leisure, Sleep). Call list_categories for ids.
- TimeLog: {id, category_id, start_time, end_time?, note}. No end_time means it is running.
- At most one log runs at a time. start_timer stops the running one first.

Typical workflow:
1) Track live: start_timer(category_id), later stop_timer. get_timer shows elapsed HH:MM:SS.
2) Backfill: quick_log(category_id, minutes) records a block ending now.
3) Review: get_history (grouped by day), get_statistics (per category and last 7 days).
4) Edit: get_day_grid, then block_click or grid_click to get a form (or new_log_form for a blank one), then save_log or delete_log.
5) Reflect: generate_report asks the AI coach for a weekly report (always returns text).

Docs:
- chronos://docs/index
- chronos://docs/concepts
- chronos://docs/workflows/day-grid
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "chronos://docs/index",
		Name:        "docs_index",
		Title:       "chronos docs index",
		Description: "Entry point: what the tools do and which doc to read next.",
		Content: `# chronos: Agent Docs Index

## Tools by purpose

- Timer: start_timer, stop_timer, get_timer, quick_log
- Logs: list_logs, get_log, get_history, new_log_form, save_log, delete_log
- Statistics: get_statistics
- Day grid: get_day_grid, grid_click, block_click, drag_start, drag_move, drag_end
- Report: generate_report
- Audit: get_recent_activity

## Read next

- chronos://docs/concepts for the data model and rules.
- chronos://docs/workflows/day-grid before driving the grid.

## Errors

Failed calls return {code, message, recovery_hint}. Common codes: LOG_NOT_FOUND,
CATEGORY_NOT_FOUND, ALREADY_ACTIVE, INVALID_RANGE, INVALID_INPUT, LOG_HELD, NOT_DRAGGING.
`,
	},
	{
		URI:         "chronos://docs/concepts",
		Name:        "docs_concepts",
		Title:       "Concepts and rules",
		Description: "Data model, time handling and aggregation rules.",
		Content: `# Concepts

## TimeLog

- start_time and end_time are instants; end_time is absent while running.
- A log never ends before it starts.
- Logs are listed newest first.

## Dates

- Dates and clock fields (YYYY-MM-DD, HH:MM) are in the server's configured timezone.
- A log belongs to the local date its start falls on, even when it crosses midnight.
- In save_log, an end clock earlier than the start clock ends on the next day.

## Statistics

- Only finished logs count. Running logs are ignored.
- Category hours keep two decimals and shares one. Daily and total hours keep one decimal.
- Logs whose category no longer exists are grouped as "Unknown".
- The daily trend always covers today and the six days before it.

## Report

- Logs of five minutes or less are left out of the prompt.
- Without an API key, or when the model fails, the report is a short apology.
`,
	},
	{
		URI:         "chronos://docs/workflows/day-grid",
		Name:        "docs_workflow_day_grid",
		Title:       "Workflow: day grid",
		Description: "How grid coordinates, clicks and drags behave.",
		Content: `# Workflow: day grid

The grid is 24 hours tall at 1.5 pixels per minute (2160 px).

## Clicks

- grid_click(y) rounds y to the nearest 15 minute slot and returns a 30 minute form there.
  Pass commit=true to save it directly; otherwise edit and call save_log.
- block_click(id) returns the form for an existing log. Running logs show "now" as end.

## Drags

1) drag_start(id, y) holds the log. Held logs cannot be edited or deleted. The running log cannot be dragged (LOG_RUNNING); stop the timer first.
2) drag_move(y) shifts the log in 5 minute steps, keeping its duration.
3) drag_end releases it. A click within 250ms of drag_end is swallowed (opened=false); later clicks open normally.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
