package markdown

import "strings"

const fence = "```"

var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"### ", 3},
	{"## ", 2},
	{"# ", 1},
}

// Parse splits content into blocks in document order. It never fails:
// an unterminated fence swallows the remainder of the input as code.
func Parse(content string) []Block {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	blocks := make([]Block, 0, len(lines))

	for i := 0; i < len(lines); {
		line := lines[i]

		if strings.HasPrefix(line, fence) {
			code := Block{
				Kind:     KindCode,
				Language: strings.TrimSpace(line[len(fence):]),
			}
			i++
			for i < len(lines) && !strings.HasPrefix(lines[i], fence) {
				code.Lines = append(code.Lines, lines[i])
				i++
			}
			if i < len(lines) {
				i++ // closing fence
			}
			blocks = append(blocks, code)
			continue
		}

		blocks = append(blocks, parseLine(line))
		i++
	}

	return blocks
}

func parseLine(line string) Block {
	for _, h := range headingPrefixes {
		if strings.HasPrefix(line, h.prefix) {
			return Block{Kind: KindHeading, Level: h.level, Text: line[len(h.prefix):]}
		}
	}

	if strings.HasPrefix(line, "- ") {
		return Block{Kind: KindListItem, Text: line[2:]}
	}

	if strings.TrimSpace(line) == "" {
		return Block{Kind: KindBreak}
	}

	return Block{Kind: KindParagraph, Text: line}
}
