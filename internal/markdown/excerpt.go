package markdown

import "strings"

// DefaultExcerptLength matches the description length used for feed cards.
const DefaultExcerptLength = 150

var inlineMarkers = strings.NewReplacer("**", "", "`", "")

// Excerpt returns a plain-text summary of content: prose from headings,
// list items and paragraphs, with inline markers removed and whitespace
// collapsed. Code blocks are skipped. Text longer than n runes is cut and
// suffixed with "...".
func Excerpt(content string, n int) string {
	if n <= 0 {
		n = DefaultExcerptLength
	}

	var words []string
	for _, block := range Parse(content) {
		switch block.Kind {
		case KindHeading, KindListItem, KindParagraph:
			words = append(words, strings.Fields(inlineMarkers.Replace(block.Text))...)
		}
	}

	text := strings.Join(words, " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
