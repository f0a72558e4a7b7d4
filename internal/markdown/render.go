package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Mode selects how prose text is treated before inline formatting.
type Mode string

const (
	// ModeSafe escapes prose before formatting it. This is the default.
	ModeSafe Mode = "safe"
	// ModeLegacy lets raw HTML in prose through untouched. Only use it
	// for trusted, admin-authored content.
	ModeLegacy Mode = "legacy"
)

// ParseMode converts a config or request value into a Mode. An empty
// string yields ModeSafe.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSafe:
		return ModeSafe, nil
	case ModeLegacy:
		return ModeLegacy, nil
	default:
		return "", fmt.Errorf("unknown markdown mode %q", s)
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMode sets the prose handling mode.
func WithMode(mode Mode) Option {
	return func(r *Renderer) {
		r.mode = mode
	}
}

// WithTheme sets the CSS classes used for emitted elements.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithSanitizer passes the final HTML through a bluemonday UGC policy that
// keeps class attributes and the code block language tag.
func WithSanitizer() Option {
	return func(r *Renderer) {
		r.policy = newPolicy()
	}
}

var languageTagRe = regexp.MustCompile(`^[\w#+.\-]*$`)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("data-language").Matching(languageTagRe).OnElements("pre")
	return p
}

// Renderer converts dialect markdown to an HTML fragment. A Renderer holds
// no mutable state and may be shared between goroutines.
type Renderer struct {
	mode   Mode
	theme  Theme
	policy *bluemonday.Policy
}

// New creates a Renderer. Without options it runs in ModeSafe with the
// default theme.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		mode:  ModeSafe,
		theme: DefaultTheme(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode reports the renderer's prose handling mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

var defaultRenderer = New()

// Render converts content using a safe-mode renderer with the default theme.
func Render(content string) string {
	return defaultRenderer.Render(content)
}

// Render converts content to HTML. It is total: any input yields output.
func (r *Renderer) Render(content string) string {
	if content == "" {
		return ""
	}

	out := r.emit(Parse(content))
	if r.policy != nil {
		out = r.policy.Sanitize(out)
	}
	return out
}

func (r *Renderer) emit(blocks []Block) string {
	var b strings.Builder
	inList := false

	for _, block := range blocks {
		if block.Kind == KindListItem {
			if !inList {
				b.WriteString(openTag("ul", r.theme.List))
				inList = true
			}
		} else if inList {
			b.WriteString("</ul>")
			inList = false
		}
		b.WriteString(r.block(block))
	}

	if inList {
		b.WriteString("</ul>")
	}
	return b.String()
}

func (r *Renderer) block(block Block) string {
	switch block.Kind {
	case KindCode:
		return r.codeBlock(block)
	case KindHeading:
		tag := "h" + strconv.Itoa(block.Level)
		text := block.Text
		if r.mode != ModeLegacy {
			text = r.inline(text)
		}
		return openTag(tag, r.theme.heading(block.Level)) + text + "</" + tag + ">"
	case KindListItem:
		return openTag("li", r.theme.ListItem) + r.inline(block.Text) + "</li>"
	case KindBreak:
		return "<br>"
	default:
		return openTag("p", r.theme.Paragraph) + r.inline(block.Text) + "</p>"
	}
}

func (r *Renderer) codeBlock(block Block) string {
	var b strings.Builder
	b.WriteString("<pre")
	if r.theme.Pre != "" {
		b.WriteString(` class="` + r.theme.Pre + `"`)
	}
	if block.Language != "" {
		lang := block.Language
		if r.mode != ModeLegacy {
			lang = EscapeHTML(lang)
		}
		b.WriteString(` data-language="` + lang + `"`)
	}
	b.WriteString(">")
	b.WriteString(openTag("code", r.theme.Code))
	b.WriteString(EscapeHTML(strings.Join(block.Lines, "\n")))
	b.WriteString("</code></pre>")
	return b.String()
}

func (r *Renderer) inline(text string) string {
	if r.mode == ModeLegacy {
		return inlineLegacy(text, r.theme)
	}
	return inlineSafe(text, r.theme)
}
