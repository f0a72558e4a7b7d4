// Package markdown tests document the expected behavior of the blog renderer.
//
// Test requirements (this file serves as documentation):
// - Empty input renders to an empty string
// - Plain lines become paragraphs in source order
// - Headings are matched longest prefix first
// - Consecutive list items share one <ul>, separate runs get separate lists
// - Fenced code is escaped, tagged with its language and never inline-formatted
// - Inline code and bold both apply on the same line
// - Safe mode escapes prose; legacy mode passes it through
package markdown

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(opts ...Option) *Renderer {
	return New(append([]Option{WithTheme(PlainTheme())}, opts...)...)
}

func TestRender_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Render(""))
	assert.Equal(t, "", New(WithMode(ModeLegacy)).Render(""))
}

func TestRender_PlainLinesBecomeParagraphs(t *testing.T) {
	out := plain().Render("first line\nsecond line\nthird line")

	assert.Equal(t, "<p>first line</p><p>second line</p><p>third line</p>", out)
}

func TestRender_Headings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"level 1", "# Title", "<h1>Title</h1>"},
		{"level 2", "## Title", "<h2>Title</h2>"},
		{"level 3", "### Title", "<h3>Title</h3>"},
		{"four hashes is a paragraph", "#### Title", "<p>#### Title</p>"},
		{"no space is a paragraph", "#Title", "<p>#Title</p>"},
		{"bare prefix", "# ", "<h1></h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plain().Render(tt.in))
		})
	}
}

func TestRender_LevelThreeNeverMatchesShorterPrefix(t *testing.T) {
	out := plain().Render("### Deep")

	assert.NotContains(t, out, "<h1>")
	assert.NotContains(t, out, "<h2>")
	assert.Equal(t, "<h3>Deep</h3>", out)
}

func TestRender_ListRuns(t *testing.T) {
	out := plain().Render("- one\n- two\nbetween\n- three")

	assert.Equal(t, "<ul><li>one</li><li>two</li></ul><p>between</p><ul><li>three</li></ul>", out)
	assert.Equal(t, 2, strings.Count(out, "<ul>"))
}

func TestRender_ListClosedAtEndOfInput(t *testing.T) {
	assert.Equal(t, "<p>intro</p><ul><li>a</li><li>b</li></ul>", plain().Render("intro\n- a\n- b"))
}

func TestRender_EmptyListItem(t *testing.T) {
	assert.Equal(t, "<ul><li></li></ul>", plain().Render("- "))
}

func TestRender_BlankLinesAreBreaks(t *testing.T) {
	assert.Equal(t, "<p>a</p><br><p>b</p>", plain().Render("a\n\nb"))
	assert.Equal(t, "<br>", plain().Render("   \t"))
}

func TestRender_FencedCodeBlock(t *testing.T) {
	in := "```js\nconst a = `x` && **b** < 1;\n```"

	out := plain().Render(in)

	assert.Equal(t, `<pre data-language="js"><code>const a = `+"`x`"+` &amp;&amp; **b** &lt; 1;</code></pre>`, out)
	assert.NotContains(t, out, "<strong>")
	assert.Equal(t, 1, strings.Count(out, "<code>"))
}

func TestRender_FencedCodeBlockWithoutLanguage(t *testing.T) {
	out := plain().Render("```\nline one\nline two\n```\nafter")

	assert.Equal(t, "<pre><code>line one\nline two</code></pre><p>after</p>", out)
}

func TestRender_UnterminatedFenceConsumesRest(t *testing.T) {
	out := plain().Render("before\n```go\n# not a heading\n- not a list")

	assert.Equal(t, "<p>before</p><pre data-language=\"go\"><code># not a heading\n- not a list</code></pre>", out)
}

func TestRender_FenceEscapesQuotes(t *testing.T) {
	out := plain().Render("```\nsay \"hi\" & 'bye'\n```")

	assert.Contains(t, out, "say &quot;hi&quot; &amp; &#x27;bye&#x27;")
}

func TestRender_InlineCodeAndBoldOnSameLine(t *testing.T) {
	out := plain().Render("Run `go test` for **speed**")

	assert.Equal(t, "<p>Run <code>go test</code> for <strong>speed</strong></p>", out)
}

func TestRender_MultipleBoldSpans(t *testing.T) {
	out := plain().Render("- **a** and **b**")

	assert.Equal(t, "<ul><li><strong>a</strong> and <strong>b</strong></li></ul>", out)
}

func TestRender_SafeModeEscapesProse(t *testing.T) {
	out := plain().Render(`<script>alert("x")</script>`)

	assert.Equal(t, "<p>&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;</p>", out)
}

func TestRender_SafeModeKeepsBoldInsideCodeLiteral(t *testing.T) {
	out := plain().Render("`**not bold**` but **bold**")

	assert.Equal(t, "<p><code>**not bold**</code> but <strong>bold</strong></p>", out)
}

func TestRender_SafeModeBoldWrapsCodeSpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"code inside bold", "**use `ctx` always**", "<p><strong>use <code>ctx</code> always</strong></p>"},
		{"star inside wrapped code", "**call `a*b` now**", "<p><strong>call <code>a*b</code> now</strong></p>"},
		{"two spans", "`x` and **`y`**", "<p><code>x</code> and <strong><code>y</code></strong></p>"},
		{"unclosed backtick", "**bold** `open", "<p><strong>bold</strong> `open</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plain().Render(tt.in))
		})
	}
}

func TestRender_SafeModeMatchesLegacyOnPlainProse(t *testing.T) {
	in := "**use `ctx` always** and `go vet`"

	assert.Equal(t, plain(WithMode(ModeLegacy)).Render(in), plain().Render(in))
}

func TestRender_ThemeClassesWithDollarAreLiteral(t *testing.T) {
	theme := PlainTheme()
	theme.InlineCode = "text-$1"
	theme.Strong = "font-$$"

	for _, mode := range []Mode{ModeSafe, ModeLegacy} {
		t.Run(string(mode), func(t *testing.T) {
			out := New(WithTheme(theme), WithMode(mode)).Render("`x` **y**")

			assert.Equal(t, `<p><code class="text-$1">x</code> <strong class="font-$$">y</strong></p>`, out)
		})
	}
}

func TestRender_SafeModeFormatsHeadings(t *testing.T) {
	assert.Equal(t, "<h2>Using <code>ctx</code></h2>", plain().Render("## Using `ctx`"))
}

func TestRender_LegacyModePassesHTMLThrough(t *testing.T) {
	out := plain(WithMode(ModeLegacy)).Render(`<em>raw</em> **bold**`)

	assert.Equal(t, "<p><em>raw</em> <strong>bold</strong></p>", out)
}

func TestRender_LegacyModeReinterpretsBoldInsideCode(t *testing.T) {
	out := plain(WithMode(ModeLegacy)).Render("`**x**`")

	assert.Equal(t, "<p><code><strong>x</strong></code></p>", out)
}

func TestRender_LegacyModeLeavesHeadingsUnformatted(t *testing.T) {
	assert.Equal(t, "<h1>**x**</h1>", plain(WithMode(ModeLegacy)).Render("# **x**"))
}

func TestRender_LanguageTagEscapedInSafeMode(t *testing.T) {
	out := plain().Render("```a\"b\nx\n```")

	assert.Contains(t, out, `data-language="a&quot;b"`)
}

func TestRender_DefaultThemeClasses(t *testing.T) {
	out := Render("- item\n```go\nx\n```")

	assert.Contains(t, out, `<ul class="mb-4 ml-6 list-disc">`)
	assert.Contains(t, out, `<li class="mb-2">item</li>`)
	assert.Contains(t, out, `<pre class="bg-gray-100 dark:bg-gray-800 rounded-lg p-4 mb-4 overflow-x-auto border" data-language="go">`)
}

func TestRender_SanitizerStripsScriptsInLegacyMode(t *testing.T) {
	r := New(WithMode(ModeLegacy), WithSanitizer())

	out := r.Render("<script>alert(1)</script>hello\n```go\nx\n```")

	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, `data-language="go"`)
	assert.Contains(t, out, `class="mb-4 leading-relaxed"`)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSafe, m)

	m, err = ParseMode(" Legacy ")
	require.NoError(t, err)
	assert.Equal(t, ModeLegacy, m)

	_, err = ParseMode("unsafe")
	assert.Error(t, err)
}

func TestRender_ConcurrentUse(t *testing.T) {
	r := New()
	want := r.Render("# t\n- a\n- b\n`c` **d**")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, r.Render("# t\n- a\n- b\n`c` **d**"))
		}()
	}
	wg.Wait()
}
