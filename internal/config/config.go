// Package config loads folio's settings from a TOML file, a .env file and
// FOLIO_* environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// FileName is the config file looked up inside the config directory.
const FileName = "config.toml"

// Config is the resolved configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Markdown Markdown `toml:"markdown"`
	Medium   Medium   `toml:"medium"`
	Log      Log      `toml:"log"`
	Identity Identity `toml:"identity"`

	// Undecoded lists keys present in the file that no field consumed.
	Undecoded []string `toml:"-"`
}

type Server struct {
	Listen         string   `toml:"listen"`
	AllowedOrigins []string `toml:"allowed_origins"`
	RequestTimeout Duration `toml:"request_timeout"`
	SecureCookies  bool     `toml:"secure_cookies"`
}

type Markdown struct {
	Mode   string `toml:"mode"`
	Engine string `toml:"engine"`
	Theme  string `toml:"theme"`
}

type Medium struct {
	Username string   `toml:"username"`
	Source   string   `toml:"source"`
	Endpoint string   `toml:"endpoint"`
	// FeedURL overrides the RSS feed fetched when Source is "rss".
	FeedURL  string   `toml:"feed_url"`
	CacheTTL Duration `toml:"cache_ttl"`
	Retries  int      `toml:"retries"`
	Limit    int      `toml:"limit"`
	Timeout  Duration `toml:"timeout"`
}

type Log struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	NoColor    bool   `toml:"no_color"`
}

type Identity struct {
	// Dir holds device.json. Empty means the config directory.
	Dir string `toml:"dir"`
}

// Duration is a time.Duration written as a Go duration string ("15m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: Server{
			Listen:         "127.0.0.1:8080",
			AllowedOrigins: []string{"*"},
			RequestTimeout: Duration{30 * time.Second},
		},
		Markdown: Markdown{
			Mode:   "safe",
			Engine: "dialect",
			Theme:  "default",
		},
		Medium: Medium{
			Username: "soumikcse07",
			Source:   "proxy",
			Endpoint: "https://api.rss2json.com/v1/api.json",
			CacheTTL: Duration{15 * time.Minute},
			Retries:  2,
			Limit:    3,
			Timeout:  Duration{10 * time.Second},
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Dir returns the configuration directory path.
func Dir() string {
	if dir := os.Getenv("FOLIO_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "folio")
}

// Load reads .env files, the TOML file at path and FOLIO_* overrides, then
// validates the result. A missing file at path is not an error.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := loadDotenv(envFiles...); err != nil {
		return nil, err
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	default:
		for _, key := range md.Undecoded() {
			cfg.Undecoded = append(cfg.Undecoded, key.String())
		}
	}

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadDotenv loads the given files, or ".env" when none are given. Existing
// environment variables win over file values.
func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// IdentityDir returns where the device identifier is stored.
func (c *Config) IdentityDir(configDir string) string {
	if c.Identity.Dir != "" {
		return c.Identity.Dir
	}
	return configDir
}
