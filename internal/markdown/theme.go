package markdown

import (
	"fmt"
	"strings"
)

// Theme holds the CSS classes attached to each emitted element. An empty
// class omits the attribute entirely.
type Theme struct {
	H1         string
	H2         string
	H3         string
	Paragraph  string
	List       string
	ListItem   string
	Pre        string
	Code       string
	InlineCode string
	Strong     string
}

// DefaultTheme returns the Tailwind classes used by the site's blog pages.
func DefaultTheme() Theme {
	return Theme{
		H1:         "text-3xl font-bold mb-6 text-gray-900 dark:text-gray-100",
		H2:         "text-2xl font-semibold mb-4 mt-8 text-gray-900 dark:text-gray-100",
		H3:         "text-xl font-semibold mb-2 text-gray-900 dark:text-gray-100",
		Paragraph:  "mb-4 leading-relaxed",
		List:       "mb-4 ml-6 list-disc",
		ListItem:   "mb-2",
		Pre:        "bg-gray-100 dark:bg-gray-800 rounded-lg p-4 mb-4 overflow-x-auto border",
		Code:       "text-sm font-mono text-gray-900 dark:text-gray-100 whitespace-pre",
		InlineCode: "bg-gray-100 dark:bg-gray-800 px-2 py-1 rounded text-sm",
		Strong:     "font-semibold text-gray-900 dark:text-gray-100",
	}
}

// PlainTheme emits bare tags with no class attributes.
func PlainTheme() Theme {
	return Theme{}
}

// ThemeByName returns the theme registered under name ("default" or "plain").
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultTheme(), nil
	case "plain":
		return PlainTheme(), nil
	default:
		return Theme{}, fmt.Errorf("unknown markdown theme %q", name)
	}
}

func (t Theme) heading(level int) string {
	switch level {
	case 1:
		return t.H1
	case 2:
		return t.H2
	default:
		return t.H3
	}
}

func openTag(name, class string) string {
	if class == "" {
		return "<" + name + ">"
	}
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(` class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	return b.String()
}
