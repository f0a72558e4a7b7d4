package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/folio/internal/markdown"
	"github.com/gauthierbraillon/folio/pkg/browser"
)

var previewPage = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-white dark:bg-gray-900 text-gray-700 dark:text-gray-300">
<article class="max-w-3xl mx-auto px-6 py-12">
{{.Body}}
</article>
</body>
</html>
`))

type previewData struct {
	Title string
	Body  template.HTML
}

// previewHandler re-reads and renders path on every request so edits show
// up on reload.
func previewHandler(path string, engine markdown.Engine, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		content, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
		if err != nil {
			logger.Error("Couldn't read preview file", slog.String("file", path), slog.Any("err", err))
			http.Error(w, "could not read "+filepath.Base(path), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := previewPage.Execute(w, previewData{
			Title: filepath.Base(path),
			Body:  template.HTML(engine.Render(string(content))), // #nosec G203 -- renderer output
		}); err != nil {
			logger.Warn("Couldn't write preview", slog.Any("err", err))
		}
	})
}

// newPreviewCmd creates the preview subcommand.
func newPreviewCmd(configPath *string) *cobra.Command {
	var port int
	var noOpen bool
	var mode, engine string

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Preview a markdown file in the browser",
		Long:  "Render a markdown file, serve it on a loopback port and open it in the default browser.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("cannot preview %s: %w", path, err)
			}

			env, err := loadRuntime(cmd, *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			e, err := buildEngine(env, mode, engine, "", false)
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
			if err != nil {
				return fmt.Errorf("failed to listen: %w", err)
			}

			srv := &http.Server{
				Handler:           previewHandler(path, e, env.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			url := "http://" + ln.Addr().String() + "/"

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Serve(ln) }()

			fmt.Fprintf(cmd.OutOrStdout(), "Previewing %s at %s\n", path, url)
			fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl-C to stop.\n")
			if !noOpen {
				if err := browser.Open(url, browser.LoopbackOnly()); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Could not open browser. Please visit:\n%s\n", url)
				}
			}

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port for the preview server (0 picks a free port)")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "Do not open the browser")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Prose handling: safe or legacy (default from config)")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "Renderer: dialect or goldmark (default from config)")

	return cmd
}
