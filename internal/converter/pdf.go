package converter

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// convertPDF extracts plain text page by page, one section per page.
func convertPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", stem(path))
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if total > 1 {
			fmt.Fprintf(&sb, "## Page %d\n\n", i)
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}
