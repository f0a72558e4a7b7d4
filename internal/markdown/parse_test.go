package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BlockSequence(t *testing.T) {
	in := "# Title\n\nintro\n- a\n```sh\necho hi\n```\n## Next"

	blocks := Parse(in)

	require.Len(t, blocks, 6)
	assert.Equal(t, Block{Kind: KindHeading, Level: 1, Text: "Title"}, blocks[0])
	assert.Equal(t, KindBreak, blocks[1].Kind)
	assert.Equal(t, Block{Kind: KindParagraph, Text: "intro"}, blocks[2])
	assert.Equal(t, Block{Kind: KindListItem, Text: "a"}, blocks[3])
	assert.Equal(t, Block{Kind: KindCode, Language: "sh", Lines: []string{"echo hi"}}, blocks[4])
	assert.Equal(t, Block{Kind: KindHeading, Level: 2, Text: "Next"}, blocks[5])
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
}

func TestParse_FenceLanguageTrimmed(t *testing.T) {
	blocks := Parse("```  python  \nprint(1)\n```")

	require.Len(t, blocks, 1)
	assert.Equal(t, "python", blocks[0].Language)
}

func TestParse_EmptyFence(t *testing.T) {
	blocks := Parse("```\n```")

	require.Len(t, blocks, 1)
	assert.Equal(t, KindCode, blocks[0].Kind)
	assert.Empty(t, blocks[0].Lines)
}

func TestBlockKind_String(t *testing.T) {
	assert.Equal(t, "heading", KindHeading.String())
	assert.Equal(t, "list_item", KindListItem.String())
	assert.Equal(t, "code", KindCode.String())
	assert.Equal(t, "break", KindBreak.String())
	assert.Equal(t, "paragraph", KindParagraph.String())
}
