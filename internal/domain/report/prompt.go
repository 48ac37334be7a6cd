package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/timelog"
	"github.com/rpggio/chronos/internal/domain/timer"
)

// MinDuration is the shortest log included in a report; shorter ones are noise.
const MinDuration = 5 * time.Minute

const lineDateLayout = "1/2/2006"

// SystemPrompt instructs the model on tone and structure.
const SystemPrompt = `You are a witty, insightful, and strict time-management coach based on the Lyubishchev method.
Your goal is to analyze the user's time logs and provide a "Weekly Wrap-Up" report similar to Spotify Wrapped but for productivity.

Format:
1. **The Vibe**: A one-sentence summary of their week (e.g., "You were a deep-work demon this week" or "Looks like Netflix won the battle").
2. **Key Stats**: Mention their top category and total hours tracked with a fun comment.
3. **The Good**: Praise a positive pattern.
4. **The Bad**: Gently roast a negative pattern (e.g., too much context switching, late nights).
5. **Advice**: One actionable tip for next week.

Keep it concise, use markdown for formatting, and be engaging.`

// Lines formats each closed log longer than MinDuration as one prompt line.
func Lines(logs []timelog.TimeLog, catalog category.Catalog, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	var lines []string
	for _, log := range logs {
		if log.Running() || log.Duration() <= MinDuration {
			continue
		}
		note := log.Note
		if note == "" {
			note = "None"
		}
		lines = append(lines, fmt.Sprintf("Date: %s, Category: %s, Duration: %s, Note: %s",
			log.StartTime.In(loc).Format(lineDateLayout),
			catalog.Name(log.CategoryID),
			timer.FormatDuration(log.Duration()),
			note,
		))
	}
	return lines
}

// Prompt builds the user message sent with SystemPrompt.
func Prompt(logs []timelog.TimeLog, catalog category.Catalog, loc *time.Location) string {
	return "Here are my time logs for the last 7 days:\n\n" +
		strings.Join(Lines(logs, catalog, loc), "\n") +
		"\n\nPlease generate my report."
}
