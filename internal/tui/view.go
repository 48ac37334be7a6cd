package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpggio/chronos/internal/domain/schedule"
	"github.com/rpggio/chronos/internal/domain/stats"
	"github.com/rpggio/chronos/internal/domain/timer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#4F46E5")).
			Padding(0, 1)

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6366F1")).
			Padding(0, 1).
			MarginTop(1)

	cursorStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
)

var tabNames = []string{"Track", "Day", "History", "Stats"}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs = append(tabs, titleStyle.Render(name))
		} else {
			tabs = append(tabs, idleStyle.Render(" "+name+" "))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	switch m.tab {
	case TrackTab:
		b.WriteString(m.trackView())
	case DayTab:
		b.WriteString(m.dayView())
	case HistoryTab:
		b.WriteString(m.historyView())
	case StatsTab:
		b.WriteString(m.statsView())
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString(m.status + "\n")
	}

	var help []string
	for _, k := range m.keys.Help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return b.String()
}

func (m Model) trackView() string {
	var header string
	if active, ok := m.svc.Timer.Active(); ok {
		cat, _ := m.catalog.Lookup(active.CategoryID)
		header = timerStyle.Render(timer.FormatDuration(m.running)) +
			"  " + swatch(cat.Color) + " " + cat.Name
	} else {
		header = idleStyle.Render("00:00:00  Not tracking")
	}

	var rows []string
	for i, cat := range m.catalog {
		line := fmt.Sprintf("%s %s", swatch(cat.Color), cat.Name)
		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	return boxStyle.Render(header) + "\n" + boxStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) historyView() string {
	groups := stats.History(m.svc.Logs.List(), m.catalog, m.now(), m.loc)
	if len(groups) == 0 {
		return boxStyle.Render(idleStyle.Render("No logs yet"))
	}

	var lines []string
	for _, g := range groups {
		label := g.Date
		if g.Today {
			label = "Today"
		}
		lines = append(lines, cursorStyle.Render(label))
		for _, item := range g.Items {
			start := item.Log.StartTime.In(m.loc).Format("15:04")
			end := "now"
			if item.Log.EndTime != nil {
				end = item.Log.EndTime.In(m.loc).Format("15:04")
			}
			line := fmt.Sprintf("  %s–%s  %s %-10s %s",
				start, end, swatch(item.Category.Color), item.Category.Name,
				formatMinutes(time.Duration(item.Duration)*time.Millisecond))
			if item.Log.Note != "" {
				line += idleStyle.Render("  " + item.Log.Note)
			}
			lines = append(lines, line)
		}
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) statsView() string {
	summary := stats.Summarize(m.svc.Logs.List(), m.catalog, m.now(), m.loc)

	lines := []string{
		fmt.Sprintf("Total %.1fh   Top focus %s", summary.TotalHours, summary.TopFocus),
		"",
	}
	for _, c := range summary.Categories {
		lines = append(lines, fmt.Sprintf("%s %-10s %6.2fh %5.1f%% %s",
			swatch(c.Color), c.Name, c.Hours, c.Share, bar(c.Share, 20)))
	}
	lines = append(lines, "")
	for _, d := range summary.Daily {
		lines = append(lines, fmt.Sprintf("%s %5.1fh %s", d.Label, d.Hours, bar(d.Hours/24*100, 24)))
	}
	out := boxStyle.Render(strings.Join(lines, "\n"))

	switch {
	case m.svc.Reports.Loading():
		out += "\n" + boxStyle.Render(idleStyle.Render("Generating report…"))
	case m.report != "":
		out += "\n" + boxStyle.Render(m.report)
	}
	return out
}

// dayView lists the selected day's blocks in grid order. The marker line
// sits between the blocks that start before and after the current time.
func (m Model) dayView() string {
	view := m.svc.Board.View()
	title := view.Date
	if view.Today {
		title += " (today)"
	}
	lines := []string{cursorStyle.Render(title)}

	markerShown := !view.Today || !m.marker.Visible
	markerLine := func() string {
		at := time.Duration(m.marker.Offset/schedule.PixelsPerMinute) * time.Minute
		return errorStyle.Render(fmt.Sprintf("── %02d:%02d now ──", int(at.Hours()), int(at.Minutes())%60))
	}
	for _, block := range view.Blocks {
		if !markerShown && block.Top > m.marker.Offset {
			lines = append(lines, markerLine())
			markerShown = true
		}
		start := block.Log.StartTime.In(m.loc).Format("15:04")
		end := "now"
		if block.Log.EndTime != nil {
			end = block.Log.EndTime.In(m.loc).Format("15:04")
		}
		line := fmt.Sprintf("%s–%s  %s %s", start, end, swatch(block.Category.Color), block.Category.Name)
		if block.ShowNote {
			line += idleStyle.Render("  " + block.Log.Note)
		}
		lines = append(lines, line)
	}
	if !markerShown {
		lines = append(lines, markerLine())
	}
	if len(view.Blocks) == 0 {
		lines = append(lines, idleStyle.Render("No logs on this day"))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

func bar(percent float64, width int) string {
	n := int(percent / 100 * float64(width))
	n = min(max(n, 0), width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func formatMinutes(d time.Duration) string {
	d = d.Round(time.Minute)
	h, m := int(d.Hours()), int(d.Minutes())%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}
