package medium

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DescriptionLength is the maximum description length before truncation.
	DescriptionLength = 150
	wordsPerMinute    = 200
	ellipsis          = "..."
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// ExtractDescription strips tags from htmlContent and truncates the result
// to DescriptionLength runes, appending "..." when cut. Entities are left
// as they are.
func ExtractDescription(htmlContent string) string {
	text := tagRe.ReplaceAllString(htmlContent, "")
	runes := []rune(text)
	if len(runes) <= DescriptionLength {
		return text
	}
	return string(runes[:DescriptionLength]) + ellipsis
}

// ExtractThumbnail returns the src of the first image with a non-empty src
// attribute, or "" when there is none. The value is HTML-decoded, so
// "&amp;" in a query string comes back as "&".
func ExtractThumbnail(htmlContent string) string {
	if !strings.Contains(htmlContent, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var src string
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("src")
		if strings.TrimSpace(v) == "" {
			return true
		}
		src = v
		return false
	})
	return src
}

// CalculateReadTime estimates reading minutes at 200 words per minute,
// never returning less than 1.
func CalculateReadTime(description string) int {
	words := len(strings.Fields(description))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
