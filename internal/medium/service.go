package medium

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Yiling-J/theine-go"
	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultTTL is how long a fetched feed is served from cache.
	DefaultTTL = 15 * time.Minute
	// DefaultRetries is the number of extra attempts after a failed fetch.
	DefaultRetries = 2

	defaultBackoff = 500 * time.Millisecond
	cacheKey       = "posts"
)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithTTL sets how long fetched posts stay cached.
func WithTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithRetries sets how many times a failed fetch is retried.
func WithRetries(n int) ServiceOption {
	return func(s *Service) {
		if n < 0 {
			n = 0
		}
		s.retries = uint64(n)
	}
}

// WithBackoff sets the delay before the first retry.
func WithBackoff(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.backoff = d
	}
}

// WithLogger sets the logger used for retry and fetch diagnostics.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithObserver registers a callback invoked after every upstream attempt
// with its error (nil on success).
func WithObserver(fn func(err error)) ServiceOption {
	return func(s *Service) {
		s.observe = fn
	}
}

// Service serves Medium posts from a cache, refilling it from a Source with
// bounded retries. Failed fetches are not cached.
type Service struct {
	source  Source
	cache   *theine.LoadingCache[string, []Post]
	ttl     time.Duration
	retries uint64
	backoff time.Duration
	logger  *slog.Logger
	observe func(error)
}

// NewService creates a Service on top of source.
func NewService(source Source, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		source:  source,
		ttl:     DefaultTTL,
		retries: DefaultRetries,
		backoff: defaultBackoff,
		logger:  slog.Default(),
		observe: func(error) {},
	}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := theine.NewBuilder[string, []Post](16).BuildWithLoader(func(ctx context.Context, _ string) (theine.Loaded[[]Post], error) {
		posts, err := s.fetch(ctx)
		if err != nil {
			return theine.Loaded[[]Post]{}, err
		}
		return theine.Loaded[[]Post]{
			Value: posts,
			Cost:  1,
			TTL:   s.ttl,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not build medium cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

// Recent returns up to limit posts in feed order. A limit of zero or less
// returns every post. The returned slice is a copy.
func (s *Service) Recent(ctx context.Context, limit int) ([]Post, error) {
	posts, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	out := make([]Post, len(posts))
	copy(out, posts)
	return out, nil
}

// Close stops the cache's background maintenance.
func (s *Service) Close() {
	s.cache.Close()
}

// Refresh drops the cached feed so the next call fetches again.
func (s *Service) Refresh() {
	s.cache.Delete(cacheKey)
}

func (s *Service) fetch(ctx context.Context) ([]Post, error) {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(backoff.WithInitialInterval(s.backoff)), s.retries),
		ctx,
	)

	attempt := func() ([]Post, error) {
		posts, err := s.source.FetchPosts(ctx)
		s.observe(err)
		if err == nil {
			return posts, nil
		}
		var fe *FetchError
		if errors.As(err, &fe) && !fe.Temporary() {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	notify := func(err error, next time.Duration) {
		s.logger.WarnContext(ctx, "Medium fetch failed, retrying", slog.Any("err", err), slog.Duration("backoff", next))
	}

	posts, err := backoff.RetryNotifyWithData(attempt, policy, notify)
	if err != nil {
		s.logger.ErrorContext(ctx, "Medium fetch failed", slog.Any("err", err))
		return nil, err
	}
	s.logger.DebugContext(ctx, "Medium feed fetched", slog.Int("posts", len(posts)))
	return posts, nil
}
