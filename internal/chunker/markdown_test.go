package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Empty(t *testing.T) {
	c := NewMarkdownChunker(1000, 100)
	assert.Nil(t, c.Split(""))
	assert.Nil(t, c.Split("   \n\n  "))
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	c := NewMarkdownChunker(1000, 100)
	chunks := c.Split("# Title\n\nA short paragraph.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "# Title\n\nA short paragraph.", chunks[0])
}

func TestSplit_ThreeSectionsWithDefaults(t *testing.T) {
	sentence := "The quick brown fox jumps over the lazy dog near the river bank. "
	section := func(title string) string {
		return "# " + title + "\n\n" + strings.Repeat(sentence, 9)
	}
	doc := section("One") + "\n\n" + section("Two") + "\n\n" + section("Three")
	require.Greater(t, utf8.RuneCountInString(doc), 1000)

	c := NewMarkdownChunker(1000, 100)
	chunks := c.Split(doc)
	require.GreaterOrEqual(t, len(chunks), 2)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 1000, "chunk %d too large", i)
	}
	// Consecutive chunks share the configured overlap.
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		require.GreaterOrEqual(t, len(prev), 100)
		tail := string(prev[len(prev)-100:])
		assert.True(t, strings.HasPrefix(chunks[i], tail), "chunk %d does not carry the overlap", i)
	}
}

func TestSplit_KeepsSmallSectionsIntact(t *testing.T) {
	doc := "# Alpha\n\nFirst section body.\n\n# Beta\n\nSecond section body."
	c := NewMarkdownChunker(1000, 100)
	chunks := c.Split(doc)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "# Alpha")
	assert.Contains(t, chunks[0], "# Beta")
}

func TestSplit_HardSplitsUnbreakableText(t *testing.T) {
	doc := strings.Repeat("x", 2500)
	c := NewMarkdownChunker(1000, 100)
	chunks := c.Split(doc)
	require.GreaterOrEqual(t, len(chunks), 3)
	total := 0
	for _, chunk := range chunks {
		n := utf8.RuneCountInString(chunk)
		assert.LessOrEqual(t, n, 1000)
		total += n
	}
	assert.GreaterOrEqual(t, total, 2500)
}

func TestSplit_NeverBreaksUTF8(t *testing.T) {
	doc := strings.Repeat("日本語のテキスト。", 300)
	c := NewMarkdownChunker(200, 20)
	for _, chunk := range c.Split(doc) {
		assert.True(t, utf8.ValidString(chunk))
	}
}

func TestNewMarkdownChunker_Defaults(t *testing.T) {
	c := NewMarkdownChunker(0, -5)
	assert.Equal(t, 1000, c.maxChars)
	assert.Equal(t, 0, c.overlap)

	c = NewMarkdownChunker(100, 100)
	assert.Equal(t, 10, c.overlap)
}
