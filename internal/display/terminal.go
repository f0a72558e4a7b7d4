// Package display provides terminal output formatting for folio.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/gauthierbraillon/folio/internal/aggregator"
	"github.com/gauthierbraillon/folio/internal/medium"
)

const separator = " • "

// descriptionWidth bounds the description line in terminal output.
const descriptionWidth = 100

// TerminalFormatter formats Medium posts for terminal display.
type TerminalFormatter struct {
	now func() time.Time
}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{now: time.Now}
}

// FormatPost formats a single post for display.
func (f *TerminalFormatter) FormatPost(p medium.Post) string {
	var lines []string

	lines = append(lines, "[MEDIUM] "+p.Title)

	meta := []string{f.formatPubDate(p.PubDate), fmt.Sprintf("%d min read", p.ReadTime())}
	if len(p.Categories) > 0 {
		meta = append(meta, strings.Join(p.Categories, ", "))
	}
	lines = append(lines, "  "+strings.Join(meta, separator))

	if p.Description != "" {
		lines = append(lines, "  "+f.TruncateText(p.Description, descriptionWidth))
	}

	if p.Link != "" {
		lines = append(lines, "  "+p.Link)
	}

	return strings.Join(lines, "\n") + "\n"
}

// FormatFeed formats multiple posts for display.
func (f *TerminalFormatter) FormatFeed(posts []medium.Post) string {
	if len(posts) == 0 {
		return "No posts to display.\n"
	}

	var formatted []string
	for _, p := range posts {
		formatted = append(formatted, f.FormatPost(p))
	}

	return strings.Join(formatted, "\n---\n\n")
}

func (f *TerminalFormatter) formatPubDate(raw string) string {
	t := aggregator.ParsePubDate(raw)
	if t.IsZero() {
		if raw == "" {
			return "unknown date"
		}
		return raw
	}
	return f.FormatTimestamp(t)
}

// FormatTimestamp formats a timestamp as relative time, falling back to a
// calendar date after a week.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	now := f.now()
	if now.Sub(t) >= 7*24*time.Hour {
		return t.Format("Jan 2, 2006")
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
