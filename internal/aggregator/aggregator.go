package aggregator

import (
	"strings"

	"github.com/gauthierbraillon/folio/internal/medium"
)

// Aggregator holds a feed snapshot and answers filtered views of it.
type Aggregator struct {
	posts []medium.Post
}

// New creates a new Aggregator instance.
func New() *Aggregator {
	return &Aggregator{
		posts: make([]medium.Post, 0),
	}
}

// AddPosts appends posts to the aggregator, keeping their order.
func (a *Aggregator) AddPosts(posts []medium.Post) {
	a.posts = append(a.posts, posts...)
}

// GetFeed returns the posts matching opts in feed order. Posts whose date
// cannot be parsed are dropped only when a date range is requested.
func (a *Aggregator) GetFeed(opts FeedOptions) []medium.Post {
	out := make([]medium.Post, 0, len(a.posts))
	for _, p := range a.posts {
		if !matchesCategories(p, opts.Categories) || !inRange(p, opts) {
			continue
		}
		out = append(out, p)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}

func matchesCategories(p medium.Post, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, c := range p.Categories {
		for _, w := range wanted {
			if strings.EqualFold(c, w) {
				return true
			}
		}
	}
	return false
}

func inRange(p medium.Post, opts FeedOptions) bool {
	if opts.Since.IsZero() && opts.Until.IsZero() {
		return true
	}
	published := ParsePubDate(p.PubDate)
	if published.IsZero() {
		return false
	}
	if !opts.Since.IsZero() && published.Before(opts.Since) {
		return false
	}
	if !opts.Until.IsZero() && published.After(opts.Until) {
		return false
	}
	return true
}
