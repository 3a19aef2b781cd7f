// Package corpus loads citation corpora: LaTeX or plain-text sources,
// and compiled PDFs, whose text is scanned for citation keys.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads every path and concatenates the extracted text into one
// corpus string. Files ending in .pdf are converted to plain text;
// everything else is read as-is.
func Load(paths []string) (string, error) {
	var b strings.Builder
	for _, path := range paths {
		text, err := loadFile(path)
		if err != nil {
			return "", fmt.Errorf("loading corpus %s: %w", path, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func loadFile(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractPDFText(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
