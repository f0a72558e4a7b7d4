package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// applyEnv overrides cfg with FOLIO_* variables read through getenv.
func applyEnv(cfg *Config, getenv func(string) string) error {
	strs := map[string]*string{
		"FOLIO_LISTEN":          &cfg.Server.Listen,
		"FOLIO_MARKDOWN_MODE":   &cfg.Markdown.Mode,
		"FOLIO_MARKDOWN_ENGINE": &cfg.Markdown.Engine,
		"FOLIO_MARKDOWN_THEME":  &cfg.Markdown.Theme,
		"FOLIO_MEDIUM_USERNAME": &cfg.Medium.Username,
		"FOLIO_MEDIUM_SOURCE":   &cfg.Medium.Source,
		"FOLIO_MEDIUM_ENDPOINT": &cfg.Medium.Endpoint,
		"FOLIO_MEDIUM_FEED_URL": &cfg.Medium.FeedURL,
		"FOLIO_LOG_LEVEL":       &cfg.Log.Level,
		"FOLIO_LOG_FILE":        &cfg.Log.File,
		"FOLIO_IDENTITY_DIR":    &cfg.Identity.Dir,
	}
	for key, dst := range strs {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	if v := getenv("FOLIO_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	durations := map[string]*Duration{
		"FOLIO_MEDIUM_CACHE_TTL": &cfg.Medium.CacheTTL,
		"FOLIO_MEDIUM_TIMEOUT":   &cfg.Medium.Timeout,
	}
	for key, dst := range durations {
		if v := getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			dst.Duration = d
		}
	}

	ints := map[string]*int{
		"FOLIO_MEDIUM_RETRIES": &cfg.Medium.Retries,
		"FOLIO_MEDIUM_LIMIT":   &cfg.Medium.Limit,
	}
	for key, dst := range ints {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	if getenv("NO_COLOR") != "" {
		cfg.Log.NoColor = true
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
