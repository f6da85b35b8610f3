package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `# Solar System

The solar system contains eight planets orbiting the sun. Jupiter is the
largest planet in the solar system. Mercury is the planet closest to the
sun. Some asteroids also orbit the sun between Mars and Jupiter. Comets
visit the inner solar system on long elliptical orbits.`

func TestDigest_PicksAtMostMaxSentences(t *testing.T) {
	d := New(2)
	out := d.Digest(sampleDoc)
	require.NotEmpty(t, out)
	assert.LessOrEqual(t, strings.Count(out, "."), 2)
}

func TestDigest_PreservesDocumentOrder(t *testing.T) {
	d := New(5)
	out := d.Digest(sampleDoc)
	first := strings.Index(out, "eight planets")
	last := strings.Index(out, "elliptical orbits")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, last, 0)
	assert.Less(t, first, last)
}

func TestDigest_StripsMarkdownMarkup(t *testing.T) {
	d := New(3)
	out := d.Digest("# Heading\n\nSome **bold** text about `code` topics.")
	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "*")
	assert.NotContains(t, out, "`")
	assert.Contains(t, out, "bold")
}

func TestDigest_EmptyInput(t *testing.T) {
	d := New(3)
	assert.Equal(t, "", d.Digest(""))
	assert.Equal(t, "", d.Digest("   \n\n"))
}

func TestDigest_TextWithoutSentenceTerminators(t *testing.T) {
	d := New(3)
	out := d.Digest("a fragment without punctuation")
	assert.Contains(t, out, "fragment")
}

func TestNew_DefaultSentenceCount(t *testing.T) {
	d := New(0)
	assert.Equal(t, 3, d.maxSentences)
}
