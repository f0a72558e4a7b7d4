package config

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var positiveDuration = validation.By(func(value interface{}) error {
	d, _ := value.(Duration)
	if d.Duration <= 0 {
		return errors.New("must be a positive duration")
	}
	return nil
})

// Validate checks every section.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Server),
		validation.Field(&c.Markdown),
		validation.Field(&c.Medium),
		validation.Field(&c.Log),
	)
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Listen, validation.Required),
		validation.Field(&s.RequestTimeout, positiveDuration),
	)
}

func (m Markdown) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Mode, validation.Required, validation.In("safe", "legacy")),
		validation.Field(&m.Engine, validation.Required, validation.In("dialect", "goldmark")),
		validation.Field(&m.Theme, validation.Required, validation.In("default", "plain")),
	)
}

func (m Medium) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Username, validation.Required),
		validation.Field(&m.Source, validation.Required, validation.In("proxy", "rss")),
		validation.Field(&m.Endpoint, is.URL),
		validation.Field(&m.FeedURL, is.URL),
		validation.Field(&m.CacheTTL, positiveDuration),
		validation.Field(&m.Retries, validation.Min(0), validation.Max(5)),
		validation.Field(&m.Limit, validation.Min(0)),
		validation.Field(&m.Timeout, positiveDuration),
	)
}

func (l Log) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.MaxSizeMB, validation.Min(0)),
		validation.Field(&l.MaxBackups, validation.Min(0)),
	)
}
