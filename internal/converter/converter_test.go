package converter

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvert_PlainText(t *testing.T) {
	path := writeFile(t, "notes.txt", "Plain text body.\nSecond line.")
	md, err := New().Convert(path)
	require.NoError(t, err)
	assert.Contains(t, md, "Plain text body.")
	assert.Contains(t, md, "Second line.")
}

func TestConvert_MarkdownPassthrough(t *testing.T) {
	path := writeFile(t, "doc.md", "# Heading\n\nBody text.")
	md, err := New().Convert(path)
	require.NoError(t, err)
	assert.Equal(t, "# Heading\n\nBody text.", md)
}

func TestConvert_ExtensionCaseInsensitive(t *testing.T) {
	path := writeFile(t, "UPPER.TXT", "shouting")
	md, err := New().Convert(path)
	require.NoError(t, err)
	assert.Contains(t, md, "shouting")
}

func TestConvert_CSVTable(t *testing.T) {
	path := writeFile(t, "data.csv", "name,age\nalice,30\nbob,25\n")
	md, err := New().Convert(path)
	require.NoError(t, err)
	assert.Contains(t, md, "| name | age |")
	assert.Contains(t, md, "| --- | --- |")
	assert.Contains(t, md, "| alice | 30 |")
}

func TestConvert_JSONCodeBlock(t *testing.T) {
	path := writeFile(t, "payload.json", `{"key": "value"}`)
	md, err := New().Convert(path)
	require.NoError(t, err)
	assert.Contains(t, md, "```json")
	assert.Contains(t, md, `"key": "value"`)
}

func TestConvert_HTML(t *testing.T) {
	path := writeFile(t, "page.html", "<h1>Title</h1><p>Hello <b>world</b></p>")
	md, err := New().Convert(path)
	require.NoError(t, err)
	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "world")
}

func TestConvert_ImageStub(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 2))))
	require.NoError(t, f.Close())

	md, err := New().Convert(path)
	require.NoError(t, err)
	assert.Contains(t, md, "pic.png")
	assert.Contains(t, md, "3x2")
}

func TestConvert_OfficeFormatsNeedLicenseKey(t *testing.T) {
	t.Setenv("UNIDOC_LICENSE_API_KEY", "")
	for _, name := range []string{"report.docx", "sheet.xlsx", "deck.pptx"} {
		path := writeFile(t, name, "placeholder")
		_, err := New().Convert(path)
		var perr *domain.DocumentProcessingError
		require.ErrorAs(t, err, &perr, name)
		assert.Contains(t, err.Error(), "UNIDOC_LICENSE_API_KEY")
	}
}

func TestConvert_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "binary.exe", "MZ")
	_, err := New().Convert(path)
	require.Error(t, err)
	var perr *domain.DocumentProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestConvert_MissingFile(t *testing.T) {
	_, err := New().Convert(filepath.Join(t.TempDir(), "absent.txt"))
	var perr *domain.DocumentProcessingError
	require.ErrorAs(t, err, &perr)
}

func TestConvert_EmptyOutputRejected(t *testing.T) {
	path := writeFile(t, "blank.txt", "   \n\t\n")
	_, err := New().Convert(path)
	var perr *domain.DocumentProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "no text")
}

func TestMediaTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", MediaTypeFor("report.pdf"))
	assert.Equal(t, "text/markdown", MediaTypeFor("README.md"))
	assert.Equal(t, "image/jpeg", MediaTypeFor("photo.JPEG"))
	assert.Equal(t, "", MediaTypeFor("archive.zip"))
	assert.True(t, Supported("slides.pptx"))
	assert.False(t, Supported("song.mp3"))
}
