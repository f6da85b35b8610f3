package converter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/unidoc/unioffice/common/license"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/spreadsheet"
)

var (
	licenseOnce sync.Once
	licenseErr  error
)

// ensureOfficeLicense activates the unioffice metered license from the
// environment. Office format conversion is unavailable without it.
func ensureOfficeLicense() error {
	licenseOnce.Do(func() {
		key := os.Getenv("UNIDOC_LICENSE_API_KEY")
		if key == "" {
			licenseErr = errors.New("missing unioffice license key in env UNIDOC_LICENSE_API_KEY")
			return
		}
		licenseErr = license.SetMeteredKey(key)
	})
	return licenseErr
}

// convertDocx walks the document paragraphs, mapping heading styles to
// markdown headings and bold runs to emphasis.
func convertDocx(path string) (string, error) {
	if err := ensureOfficeLicense(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", stem(path))
	for _, para := range doc.Paragraphs() {
		text := paragraphText(para)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if level := headingLevel(para.Style()); level > 0 {
			sb.WriteString(strings.Repeat("#", level+1) + " " + text + "\n\n")
			continue
		}
		sb.WriteString(text + "\n\n")
	}
	return sb.String(), nil
}

func paragraphText(para document.Paragraph) string {
	var sb strings.Builder
	for _, run := range para.Runs() {
		text := run.Text()
		if text == "" {
			continue
		}
		if run.Properties().IsBold() {
			text = "**" + text + "**"
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// headingLevel maps a Word style name like "Heading2" to a markdown
// heading level, 0 when the paragraph is body text.
func headingLevel(style string) int {
	lower := strings.ToLower(style)
	if !strings.Contains(lower, "heading") && !strings.Contains(lower, "title") {
		return 0
	}
	for _, r := range lower {
		if r >= '1' && r <= '6' {
			return int(r - '0')
		}
	}
	return 1
}

// convertXlsx renders each sheet as a markdown table.
func convertXlsx(path string) (string, error) {
	if err := ensureOfficeLicense(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	wb, err := spreadsheet.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse xlsx: %w", err)
	}
	defer wb.Close()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", stem(path))
	for _, sheet := range wb.Sheets() {
		rows := sheet.Rows()
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", sheet.Name())
		width := 0
		cells := make([][]string, 0, len(rows))
		for _, row := range rows {
			var rec []string
			for _, cell := range row.Cells() {
				rec = append(rec, strings.ReplaceAll(cell.GetString(), "|", "\\|"))
			}
			if len(rec) > width {
				width = len(rec)
			}
			cells = append(cells, rec)
		}
		if width == 0 {
			continue
		}
		writeRow := func(rec []string) {
			sb.WriteString("|")
			for i := 0; i < width; i++ {
				cell := ""
				if i < len(rec) {
					cell = rec[i]
				}
				sb.WriteString(" " + cell + " |")
			}
			sb.WriteString("\n")
		}
		writeRow(cells[0])
		sb.WriteString("|" + strings.Repeat(" --- |", width) + "\n")
		for _, rec := range cells[1:] {
			writeRow(rec)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// convertPptx renders each slide as a section of its placeholder text.
func convertPptx(path string) (string, error) {
	if err := ensureOfficeLicense(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	p, err := presentation.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pptx: %w", err)
	}
	defer p.Close()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", stem(path))
	for i, slide := range p.Slides() {
		fmt.Fprintf(&sb, "## Slide %d\n\n", i+1)
		for _, ph := range slide.PlaceHolders() {
			for _, para := range ph.Paragraphs() {
				var line strings.Builder
				for _, run := range para.X().EG_TextRun {
					if run.R != nil {
						line.WriteString(run.R.T)
					}
				}
				if text := strings.TrimSpace(line.String()); text != "" {
					sb.WriteString(text + "\n\n")
				}
			}
		}
	}
	return sb.String(), nil
}
