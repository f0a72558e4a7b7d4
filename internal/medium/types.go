// Package medium fetches a Medium author's feed and normalizes it into post
// summaries for the site's "latest articles" section.
//
// This package enables folio to:
// - Fetch the feed through the rss2json proxy or directly as RSS
// - Strip HTML from descriptions and extract a thumbnail
// - Estimate read time
// - Cache results and retry transient failures
package medium

import "context"

// Post is a normalized Medium feed entry.
type Post struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	PubDate     string   `json:"pub_date"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	GUID        string   `json:"guid"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
}

// ReadTime estimates the minutes needed to read the post's description.
func (p Post) ReadTime() int {
	return CalculateReadTime(p.Description)
}

// Source produces the full list of posts for a feed.
type Source interface {
	FetchPosts(ctx context.Context) ([]Post, error)
}
