package medium

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultEndpoint is the rss2json proxy that converts the Medium RSS feed to JSON.
	DefaultEndpoint = "https://api.rss2json.com/v1/api.json"

	feedBaseURL  = "https://medium.com/feed/@"
	maxBodyBytes = 8 << 20
)

// FeedURL returns the public RSS feed URL of a Medium user.
func FeedURL(username string) string {
	return feedBaseURL + strings.TrimPrefix(username, "@")
}

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures a Client or RSSClient.
type ClientOption func(*clientConfig)

type clientConfig struct {
	httpClient HTTPClient
	baseURL    string
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = httpClient
	}
}

// WithBaseURL overrides the URL requested by the client (useful for testing).
// For Client it replaces the proxy endpoint, for RSSClient the feed URL.
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

func newClientConfig(opts []ClientOption) clientConfig {
	cfg := clientConfig{httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Client fetches a Medium feed through the rss2json proxy.
type Client struct {
	httpClient HTTPClient
	endpoint   string
	feedURL    string
}

// NewClient creates a proxy client for the given Medium username.
func NewClient(username string, opts ...ClientOption) *Client {
	cfg := newClientConfig(opts)
	endpoint := cfg.baseURL
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: cfg.httpClient,
		endpoint:   endpoint,
		feedURL:    FeedURL(username),
	}
}

// FetchPosts performs one GET against the proxy and returns every item in
// the feed, normalized.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	body, err := get(ctx, c.httpClient, c.requestURL())
	if err != nil {
		return nil, err
	}
	return parseProxyResponse(body)
}

func (c *Client) requestURL() string {
	return c.endpoint + "?rss_url=" + url.QueryEscape(c.feedURL)
}

func get(ctx context.Context, httpClient HTTPClient, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Op: "build request", Err: err}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: "fetch", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Op: "fetch", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Op: "read body", Err: err}
	}
	return body, nil
}

func parseProxyResponse(data []byte) ([]Post, error) {
	var resp proxyResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &FetchError{Op: "decode", Err: fmt.Errorf("%w: %v", ErrMalformedPayload, err)}
	}

	if resp.Status != "ok" {
		return nil, &FetchError{Op: "decode", Err: fmt.Errorf("%w: status %q %s", ErrUpstreamStatus, resp.Status, resp.Message)}
	}

	if err := resp.Validate(); err != nil {
		return nil, &FetchError{Op: "validate", Err: fmt.Errorf("%w: %v", ErrMalformedPayload, err)}
	}

	posts := make([]Post, 0, len(resp.Items))
	for _, item := range resp.Items {
		categories := item.Categories
		if categories == nil {
			categories = []string{}
		}
		posts = append(posts, Post{
			Title:       item.Title,
			Link:        item.Link,
			PubDate:     item.PubDate,
			Description: ExtractDescription(item.Description),
			Categories:  categories,
			GUID:        item.GUID,
			Thumbnail:   ExtractThumbnail(item.Description),
		})
	}
	return posts, nil
}

// proxyResponse and proxyItem are private JSON decoding structs.
type proxyResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Items   []proxyItem `json:"items"`
}

func (r proxyResponse) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Items, validation.NotNil),
	)
}

type proxyItem struct {
	Title       string   `json:"title"`
	PubDate     string   `json:"pubDate"`
	Link        string   `json:"link"`
	GUID        string   `json:"guid"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

func (i proxyItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Required),
		validation.Field(&i.Link, validation.Required),
	)
}
