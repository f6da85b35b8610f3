package converter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

func convertPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.New("file is not valid UTF-8 text")
	}
	return string(data), nil
}

// convertCSV renders the file as a markdown table. The first record is
// treated as the header row.
func convertCSV(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", errors.New("csv file contains no records")
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", stem(path))
	writeRow := func(rec []string) {
		sb.WriteString("|")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(rec) {
				cell = strings.ReplaceAll(rec[i], "|", "\\|")
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}
	writeRow(records[0])
	sb.WriteString("|" + strings.Repeat(" --- |", width) + "\n")
	for _, rec := range records[1:] {
		writeRow(rec)
	}
	return sb.String(), nil
}

// convertCodeBlock wraps structured text formats in a fenced block so
// their content is preserved verbatim for retrieval.
func convertCodeBlock(path, lang string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.New("file is not valid UTF-8 text")
	}
	content := strings.TrimRight(string(data), "\n")
	return fmt.Sprintf("# %s\n\n```%s\n%s\n```\n", stem(path), lang, content), nil
}
