package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/folio/internal/aggregator"
	"github.com/gauthierbraillon/folio/internal/config"
	"github.com/gauthierbraillon/folio/internal/display"
	"github.com/gauthierbraillon/folio/internal/identity"
	"github.com/gauthierbraillon/folio/internal/markdown"
	"github.com/gauthierbraillon/folio/internal/medium"
	"github.com/gauthierbraillon/folio/internal/server"
)

// newServeCmd creates the serve subcommand.
func newServeCmd(configPath *string) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Serve markdown rendering, the Medium feed and device identifiers over HTTP until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime(cmd, *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			if listen != "" {
				env.cfg.Server.Listen = listen
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics := server.NewMetrics(reg)

			svc, err := newService(env, medium.WithObserver(metrics.ObserveFetch))
			if err != nil {
				return err
			}
			defer svc.Close()

			srv, err := server.New(env.cfg, svc,
				server.WithLogger(env.logger),
				server.WithMetrics(metrics, reg),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "L", "", "Address to listen on (overrides config)")

	return cmd
}

// newService wraps the configured Medium source in a cached, retrying service.
func newService(env *runtimeEnv, opts ...medium.ServiceOption) (*medium.Service, error) {
	base := []medium.ServiceOption{
		medium.WithTTL(env.cfg.Medium.CacheTTL.Duration),
		medium.WithRetries(env.cfg.Medium.Retries),
		medium.WithLogger(env.logger),
	}
	return medium.NewService(newSource(env.cfg.Medium), append(base, opts...)...)
}

// newRenderCmd creates the render subcommand.
func newRenderCmd(configPath *string) *cobra.Command {
	var mode, engine, theme string
	var sanitize bool
	var excerpt int

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render markdown to HTML",
		Long:  "Render a markdown file (or stdin) to an HTML fragment on stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime(cmd, *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			content, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			if excerpt > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), markdown.Excerpt(string(content), excerpt))
				return nil
			}

			e, err := buildEngine(env, mode, engine, theme, sanitize)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.Render(string(content)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Prose handling: safe or legacy (default from config)")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "Renderer: dialect or goldmark (default from config)")
	cmd.Flags().StringVarP(&theme, "theme", "t", "", "CSS classes: default or plain (default from config)")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Sanitize the HTML output")
	cmd.Flags().IntVar(&excerpt, "excerpt", 0, "Print a plain-text excerpt of N characters instead of HTML")

	return cmd
}

// buildEngine resolves flag values against the configuration.
func buildEngine(env *runtimeEnv, mode, engine, theme string, sanitize bool) (markdown.Engine, error) {
	if mode == "" {
		mode = env.cfg.Markdown.Mode
	}
	if engine == "" {
		engine = env.cfg.Markdown.Engine
	}
	if theme == "" {
		theme = env.cfg.Markdown.Theme
	}

	m, err := markdown.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	t, err := markdown.ThemeByName(theme)
	if err != nil {
		return nil, err
	}

	opts := []markdown.Option{markdown.WithMode(m), markdown.WithTheme(t)}
	if sanitize {
		opts = append(opts, markdown.WithSanitizer())
	}
	return markdown.NewEngine(engine, opts...)
}

// newMediumCmd creates the medium subcommand.
func newMediumCmd(configPath *string) *cobra.Command {
	var limit int
	var asJSON bool
	var categories []string

	cmd := &cobra.Command{
		Use:   "medium",
		Short: "Display latest Medium posts",
		Long:  "Fetch the configured author's Medium feed and display the latest posts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime(cmd, *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			if !cmd.Flags().Changed("limit") {
				limit = env.cfg.Medium.Limit
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			svc, err := newService(env)
			if err != nil {
				return err
			}
			defer svc.Close()
			posts, err := svc.Recent(ctx, 0)
			if err != nil {
				return fmt.Errorf("failed to fetch Medium posts: %w", err)
			}

			agg := aggregator.New()
			agg.AddPosts(posts)
			posts = agg.GetFeed(aggregator.FeedOptions{Limit: limit, Categories: categories})

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(posts)
			}

			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatFeed(posts))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 3, "Maximum number of posts to display (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print posts as JSON")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Only show posts in these categories")

	return cmd
}

// newDeviceCmd creates the device subcommand.
func newDeviceCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Print this installation's device identifier",
		Long:  "Print the device identifier, creating and saving one on first use.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime(cmd, *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			var provider identity.Provider = identity.NewFileProvider(env.cfg.IdentityDir(env.configDir))
			id, err := provider.DeviceID(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get device id: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	return cmd
}

// newConfigCmd creates the config subcommand.
func newConfigCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long:  "Show the config directory and the resolved folio configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime(cmd, *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			path := *configPath
			if path == "" {
				path = filepath.Join(env.configDir, config.FileName)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Config directory: %s\n", env.configDir)
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n\n", path)
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(env.cfg)
		},
	}

	return cmd
}
