// Package browser opens preview pages in the user's browser.
package browser

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Option restricts which URLs Open accepts.
type Option func(*options)

type options struct {
	loopbackOnly bool
}

// LoopbackOnly rejects URLs whose host is not a loopback address.
func LoopbackOnly() Option {
	return func(o *options) {
		o.loopbackOnly = true
	}
}

// Open opens the URL in the browser named by $BROWSER, or the platform
// default when it is unset.
func Open(rawURL string, opts ...Option) error {
	cmd, err := Command(runtime.GOOS, os.Getenv("BROWSER"), rawURL, opts...)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command validates rawURL and builds the command that would open it on
// goos. A non-empty browser overrides the platform launcher.
func Command(goos, browser, rawURL string, opts ...Option) (*exec.Cmd, error) {
	if err := Validate(rawURL, opts...); err != nil {
		return nil, err
	}

	if browser != "" {
		return exec.Command(browser, rawURL), nil // #nosec G204 -- URL validated above
	}

	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", rawURL), nil // #nosec G204 -- URL validated above
	case "darwin":
		return exec.Command("open", rawURL), nil // #nosec G204 -- URL validated above
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL), nil // #nosec G204 -- URL validated above
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Validate checks that rawURL is a plain http(s) URL safe to hand to a
// launcher process.
func Validate(rawURL string, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if strings.ContainsAny(rawURL, " \t\r\n\x00;|&$`") {
		return fmt.Errorf("invalid URL: contains forbidden characters")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q (only http and https allowed)", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	if o.loopbackOnly && !isLoopback(u.Hostname()) {
		return fmt.Errorf("refusing to open non-loopback host %q", u.Hostname())
	}
	return nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
