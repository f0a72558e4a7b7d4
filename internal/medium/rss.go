package medium

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// RSSClient fetches the Medium RSS feed directly, without the JSON proxy.
type RSSClient struct {
	httpClient HTTPClient
	feedURL    string
}

// NewRSSClient creates a direct RSS client for the given Medium username.
func NewRSSClient(username string, opts ...ClientOption) *RSSClient {
	cfg := newClientConfig(opts)
	feedURL := cfg.baseURL
	if feedURL == "" {
		feedURL = FeedURL(username)
	}
	return &RSSClient{
		httpClient: cfg.httpClient,
		feedURL:    feedURL,
	}
}

// FetchPosts downloads and parses the feed. Medium puts the article body in
// content:encoded, which is used in place of the short description when
// present.
func (c *RSSClient) FetchPosts(ctx context.Context) ([]Post, error) {
	body, err := get(ctx, c.httpClient, c.feedURL)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{Op: "parse feed", Err: fmt.Errorf("%w: %v", ErrMalformedPayload, err)}
	}

	posts := make([]Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		raw := item.Content
		if raw == "" {
			raw = item.Description
		}

		thumbnail := ExtractThumbnail(raw)
		if item.Image != nil && item.Image.URL != "" {
			thumbnail = item.Image.URL
		}

		categories := item.Categories
		if categories == nil {
			categories = []string{}
		}

		posts = append(posts, Post{
			Title:       item.Title,
			Link:        item.Link,
			PubDate:     item.Published,
			Description: ExtractDescription(raw),
			Categories:  categories,
			GUID:        item.GUID,
			Thumbnail:   thumbnail,
		})
	}
	return posts, nil
}
