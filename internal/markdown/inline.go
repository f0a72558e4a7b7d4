package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	inlineCodeRe  = regexp.MustCompile("`([^`]+)`")
	strongRe      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	placeholderRe = regexp.MustCompile("\x00([0-9]+)\x00")
)

// replacement quotes s for use in a regexp replacement template.
func replacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// inlineLegacy runs the two substitutions back to back over the whole line.
// Bold markers that ended up inside a code span are rewritten too.
func inlineLegacy(text string, theme Theme) string {
	out := inlineCodeRe.ReplaceAllString(text, replacement(openTag("code", theme.InlineCode))+"$1</code>")
	return strongRe.ReplaceAllString(out, replacement(openTag("strong", theme.Strong))+"$1</strong>")
}

// inlineSafe escapes the line, then formats it. Code span contents are
// swapped for placeholders during the bold pass so they stay literal while
// bold can still wrap a whole code span.
func inlineSafe(text string, theme Theme) string {
	escaped := strings.ReplaceAll(EscapeHTML(text), "\x00", "")
	codeOpen := openTag("code", theme.InlineCode)

	var spans []string
	out := inlineCodeRe.ReplaceAllStringFunc(escaped, func(m string) string {
		spans = append(spans, m[1:len(m)-1])
		return "`\x00" + strconv.Itoa(len(spans)-1) + "\x00`"
	})
	out = strongRe.ReplaceAllString(out, replacement(openTag("strong", theme.Strong))+"$1</strong>")
	out = inlineCodeRe.ReplaceAllStringFunc(out, func(m string) string {
		return codeOpen + m[1:len(m)-1] + "</code>"
	})
	return placeholderRe.ReplaceAllStringFunc(out, func(m string) string {
		i, _ := strconv.Atoi(m[1 : len(m)-1])
		return spans[i]
	})
}
