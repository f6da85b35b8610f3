package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"docrag/internal/domain"
)

// MarkdownConverter converts supported source files into normalized
// UTF-8 markdown. It is stateless; callers own persistence. Every
// failure surfaces as a *domain.DocumentProcessingError and no partial
// output is ever returned.
type MarkdownConverter struct{}

func New() *MarkdownConverter { return &MarkdownConverter{} }

var mediaTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".html": "text/html",
	".htm":  "text/html",
	".csv":  "text/csv",
	".json": "application/json",
	".xml":  "application/xml",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// MediaTypeFor returns the media type for a file name, or "" when the
// format is not supported.
func MediaTypeFor(name string) string {
	return mediaTypes[strings.ToLower(filepath.Ext(name))]
}

// Supported reports whether the file format can be converted.
func Supported(name string) bool { return MediaTypeFor(name) != "" }

// Convert reads the file at path and returns its markdown rendition.
func (c *MarkdownConverter) Convert(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		markdown string
		err      error
	)
	switch ext {
	case ".txt", ".md":
		markdown, err = convertPlainText(path)
	case ".csv":
		markdown, err = convertCSV(path)
	case ".json":
		markdown, err = convertCodeBlock(path, "json")
	case ".xml":
		markdown, err = convertCodeBlock(path, "xml")
	case ".html", ".htm":
		markdown, err = convertHTML(path)
	case ".pdf":
		markdown, err = convertPDF(path)
	case ".docx":
		markdown, err = convertDocx(path)
	case ".xlsx":
		markdown, err = convertXlsx(path)
	case ".pptx":
		markdown, err = convertPptx(path)
	case ".jpg", ".jpeg", ".png":
		markdown, err = convertImage(path)
	default:
		err = fmt.Errorf("unsupported file format %q", ext)
	}
	op := "convert " + filepath.Base(path)
	if err != nil {
		return "", domain.NewDocumentProcessingError(op, err)
	}
	if strings.TrimSpace(markdown) == "" {
		return "", domain.NewDocumentProcessingError(op, errors.New("conversion produced no text"))
	}
	return markdown, nil
}

// stem returns the file name without directory and extension, used as
// the default artifact name and for generated headings.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
