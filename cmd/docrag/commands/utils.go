package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"docrag/internal/domain"
)

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseFilter decodes the -f/--filter JSON argument into a flat
// metadata filter. Empty input means no filter.
func parseFilter(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var filter map[string]any
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return nil, fmt.Errorf("invalid filter JSON: %w", err)
	}
	return filter, nil
}

func printSources(w io.Writer, results []domain.SearchResult) {
	for i, res := range results {
		source := "unknown"
		if v, ok := res.Metadata["source"].(string); ok {
			source = v
		}
		fmt.Fprintf(w, "Source %d (score %.4f):\n", i+1, res.Score)
		fmt.Fprintf(w, "  File: %s\n", source)
		fmt.Fprintf(w, "  Content: %s\n\n", preview(res.Content, 200))
	}
}

func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
