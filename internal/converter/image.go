package converter

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
)

// convertImage produces a markdown stub describing the image. No OCR
// is attempted; the reference and dimensions are enough to make the
// file addressable from the index.
func convertImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	name := filepath.Base(path)
	return fmt.Sprintf("# %s\n\n![%s](%s)\n\n- Format: %s\n- Dimensions: %dx%d px\n",
		stem(path), name, name, format, cfg.Width, cfg.Height), nil
}
