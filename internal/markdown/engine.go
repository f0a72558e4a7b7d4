package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Engine turns markdown into an HTML fragment.
type Engine interface {
	Render(content string) string
}

// Engine names accepted by NewEngine.
const (
	EngineDialect  = "dialect"
	EngineGoldmark = "goldmark"
)

// NewEngine returns the engine registered under name. Options only apply
// to the dialect engine.
func NewEngine(name string, opts ...Option) (Engine, error) {
	switch strings.ToLower(name) {
	case "", EngineDialect:
		return New(opts...), nil
	case EngineGoldmark:
		return NewGoldmark(), nil
	default:
		return nil, fmt.Errorf("unknown markdown engine %q", name)
	}
}

// Goldmark renders full CommonMark with GFM extensions. Raw HTML in the
// source is never emitted.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark creates a goldmark-backed engine.
func NewGoldmark() *Goldmark {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &Goldmark{md: md}
}

// Render converts content. Conversion into a bytes.Buffer cannot fail on
// write, so an error here means goldmark rejected the input; the content
// is then returned as escaped preformatted text.
func (g *Goldmark) Render(content string) string {
	if content == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(content), &buf); err != nil {
		return "<pre>" + EscapeHTML(content) + "</pre>"
	}
	return buf.String()
}
