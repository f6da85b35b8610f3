package converter

import (
	"os"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

func convertHTML(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	conv := md.NewConverter("", true, nil)
	return conv.ConvertString(string(data))
}
