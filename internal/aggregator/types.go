// Package aggregator filters a feed of Medium posts into the view a page asks for.
//
// This package enables folio to:
// - Restrict posts to a set of categories
// - Filter posts by publish date range
// - Limit the number of posts while keeping feed order
package aggregator

import "time"

// FeedOptions configures feed retrieval.
type FeedOptions struct {
	Limit      int
	Since      time.Time
	Until      time.Time
	Categories []string
}

// pubDateFormats lists the layouts seen in pubDate values: rss2json emits
// "2006-01-02 15:04:05", the raw RSS feed uses RFC 1123.
var pubDateFormats = []string{
	time.DateTime,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
}

// ParsePubDate parses a feed publish date, returning the zero time when no
// known layout matches.
func ParsePubDate(s string) time.Time {
	for _, f := range pubDateFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
