package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	meta, body, err := Split(input)
	require.NoError(t, err)
	require.Empty(t, meta)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_ParsesMetaAndBody(t *testing.T) {
	input := []byte("---\ntitle: Channel Modes\n---\n# Title\n")

	meta, body, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, "Channel Modes", meta["title"])
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_EmptyFrontmatterBlock_YieldsEmptyMeta(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	meta, body, err := Split(input)
	require.NoError(t, err)
	require.Empty(t, meta)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, err := Split([]byte("---\ntitle: x\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestSplit_InvalidYAML_ReturnsError(t *testing.T) {
	_, _, err := Split([]byte("---\ntitle: [broken\n---\nbody\n"))
	require.Error(t, err)
}

func TestTitle_MissingOrNonString_IsEmpty(t *testing.T) {
	require.Equal(t, "", Title(map[string]any{}))
	require.Equal(t, "", Title(map[string]any{"title": 7}))
	require.Equal(t, "Modes", Title(map[string]any{"title": "Modes"}))
}
