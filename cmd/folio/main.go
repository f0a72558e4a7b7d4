// Package main provides the folio CLI entry point.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/folio/internal/config"
	"github.com/gauthierbraillon/folio/internal/logging"
	"github.com/gauthierbraillon/folio/internal/medium"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveVersion prefers the ldflags version and falls back to the module
// version recorded by go install.
func resolveVersion(ldflagsVersion string, info *debug.BuildInfo) string {
	if ldflagsVersion != "dev" {
		return ldflagsVersion
	}
	if info == nil || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}

// runtimeEnv is what every command needs after flags are parsed.
type runtimeEnv struct {
	configDir string
	cfg       *config.Config
	logger    *slog.Logger
	closer    io.Closer
}

func (e *runtimeEnv) Close() error {
	return e.closer.Close()
}

// loadRuntime resolves the config directory, loads the configuration and
// builds the logger.
func loadRuntime(cmd *cobra.Command, configPath string) (*runtimeEnv, error) {
	configDir := config.Dir()
	if configPath == "" {
		configPath = filepath.Join(configDir, config.FileName)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, closer := logging.New(cfg.Log, cmd.ErrOrStderr())
	if len(cfg.Undecoded) > 0 {
		logger.Warn("Unknown configuration keys ignored", slog.String("file", configPath), slog.Any("keys", cfg.Undecoded))
	}

	return &runtimeEnv{
		configDir: configDir,
		cfg:       cfg,
		logger:    logger,
		closer:    closer,
	}, nil
}

// newSource builds the Medium source selected by configuration.
func newSource(cfg config.Medium) medium.Source {
	opts := []medium.ClientOption{
		medium.WithHTTPClient(&http.Client{Timeout: cfg.Timeout.Duration}),
	}

	if cfg.Source == "rss" {
		if cfg.FeedURL != "" {
			opts = append(opts, medium.WithBaseURL(cfg.FeedURL))
		}
		return medium.NewRSSClient(cfg.Username, opts...)
	}

	if cfg.Endpoint != "" {
		opts = append(opts, medium.WithBaseURL(cfg.Endpoint))
	}
	return medium.NewClient(cfg.Username, opts...)
}

// newRootCmd creates the root command for folio CLI.
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "folio",
		Short:        "Render portfolio markdown and serve Medium posts",
		Long:         "Folio renders the portfolio's markdown dialect to HTML and serves the author's latest Medium posts.",
		Version:      resolveVersion(version, readBuildInfo()),
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate("folio version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: <config dir>/config.toml)")

	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newRenderCmd(&configPath))
	rootCmd.AddCommand(newPreviewCmd(&configPath))
	rootCmd.AddCommand(newMediumCmd(&configPath))
	rootCmd.AddCommand(newDeviceCmd(&configPath))
	rootCmd.AddCommand(newConfigCmd(&configPath))

	return rootCmd
}

func readBuildInfo() *debug.BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return info
}

// openInput returns stdin for "-" or no argument, the named file otherwise.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	return f, nil
}
