// Package markdown renders the blog's restricted markdown dialect to HTML.
//
// The dialect is line oriented: headings (#, ##, ###), bullet items (- ),
// fenced code blocks, blank-line breaks and paragraphs. Inside prose lines
// two inline forms are recognised: `code` and **bold**.
package markdown

// BlockKind identifies the type of a rendered block.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindListItem
	KindCode
	KindBreak
)

func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list_item"
	case KindCode:
		return "code"
	case KindBreak:
		return "break"
	default:
		return "paragraph"
	}
}

// Block is one structural unit of a document. Code blocks keep their raw
// lines; every other kind carries the text of a single input line with its
// prefix removed.
type Block struct {
	Kind     BlockKind
	Level    int // 1-3, headings only
	Text     string
	Language string
	Lines    []string
}
