package display

import (
	"strings"
	"testing"
	"time"

	"github.com/gauthierbraillon/folio/internal/medium"
)

func TestTerminalFeed_ShowsPostTitle(t *testing.T) {
	post := medium.Post{
		Title: "Shipping a Flutter app",
		Link:  "https://medium.com/@jane/shipping-123",
	}

	output := NewTerminalFormatter().FormatPost(post)

	if !strings.Contains(output, "Shipping a Flutter app") {
		t.Error("user should see post title in terminal output")
	}
}

func TestTerminalFeed_ShowsSourceIndicator(t *testing.T) {
	output := NewTerminalFormatter().FormatPost(medium.Post{Title: "Post"})

	if !strings.Contains(strings.ToLower(output), "medium") {
		t.Error("user should see content source (Medium) in terminal output")
	}
}

func TestTerminalFeed_ShowsReadTimeAndCategories(t *testing.T) {
	post := medium.Post{
		Title:       "Post",
		Description: strings.Repeat("word ", 250),
		Categories:  []string{"flutter", "mobile"},
	}

	output := NewTerminalFormatter().FormatPost(post)

	if !strings.Contains(output, "2 min read") {
		t.Errorf("user should see read time estimate, got:\n%s", output)
	}
	if !strings.Contains(output, "flutter, mobile") {
		t.Errorf("user should see categories, got:\n%s", output)
	}
}

func TestTerminalFeed_ShowsRelativeTimestamps(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	formatter := &TerminalFormatter{now: func() time.Time { return now }}
	testCases := []struct {
		name      string
		timestamp time.Time
		contains  string
	}{
		{"recent minutes", now.Add(-30 * time.Minute), "minutes ago"},
		{"recent hours", now.Add(-3 * time.Hour), "hours ago"},
		{"recent days", now.Add(-48 * time.Hour), "days ago"},
		{"older than a week", now.Add(-30 * 24 * time.Hour), "Feb 9, 2024"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output := formatter.FormatTimestamp(tc.timestamp)
			if !strings.Contains(output, tc.contains) {
				t.Errorf("user should see %q for %s content, got %q", tc.contains, tc.name, output)
			}
		})
	}
}

func TestTerminalFeed_ShowsUnparseablePubDateVerbatim(t *testing.T) {
	output := NewTerminalFormatter().FormatPost(medium.Post{Title: "Post", PubDate: "yesterday-ish"})

	if !strings.Contains(output, "yesterday-ish") {
		t.Errorf("user should see raw pub date when it cannot be parsed, got:\n%s", output)
	}
}

func TestTerminalFeed_ShowsClickableURLs(t *testing.T) {
	post := medium.Post{
		Title: "Post",
		Link:  "https://medium.com/@jane/post-abc",
	}

	output := NewTerminalFormatter().FormatPost(post)

	if !strings.Contains(output, "https://medium.com/@jane/post-abc") {
		t.Error("user should see clickable post URL in terminal output")
	}
}

func TestTerminalFeed_TruncatesLongText(t *testing.T) {
	formatter := NewTerminalFormatter()
	longText := "This is a very long text that should be truncated because it exceeds the maximum length"

	truncated := formatter.TruncateText(longText, 20)

	if len([]rune(truncated)) > 20 {
		t.Errorf("user should see truncated text (max 20 chars), got %d chars", len(truncated))
	}
	if !strings.HasSuffix(truncated, "...") {
		t.Error("user should see ellipsis indicating text was truncated")
	}
}

func TestTerminalFeed_TruncatesByCharacterNotByte(t *testing.T) {
	truncated := NewTerminalFormatter().TruncateText("héllo wörld ünïcode", 8)

	if truncated != "héllo..." {
		t.Errorf("expected rune-safe truncation, got %q", truncated)
	}
}

func TestTerminalFeed_PreservesShortText(t *testing.T) {
	output := NewTerminalFormatter().TruncateText("Short", 20)

	if output != "Short" {
		t.Errorf("user should see full text when under limit, got: %s", output)
	}
}

func TestTerminalFeed_ShowsMultiplePosts(t *testing.T) {
	posts := []medium.Post{
		{Title: "First Post"},
		{Title: "Second Post"},
	}

	output := NewTerminalFormatter().FormatFeed(posts)

	if !strings.Contains(output, "First Post") {
		t.Error("user should see first post in feed")
	}
	if !strings.Contains(output, "Second Post") {
		t.Error("user should see second post in feed")
	}
}

func TestTerminalFeed_ShowsEmptyFeedMessage(t *testing.T) {
	output := NewTerminalFormatter().FormatFeed(nil)

	if !strings.Contains(strings.ToLower(output), "no") {
		t.Error("user should see message indicating no content available")
	}
}
