package report

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SaveScreenshot persists a captured PNG under screenshots/ and returns
// its base64 encoding for embedding in step results and HTML reports.
func (g *Generator) SaveScreenshot(data []byte, testID, stepName string) (string, error) {
	name := fmt.Sprintf("%s_%s_%s.png", sanitizeName(testID), sanitizeName(stepName), g.now().Format(fileTimestampLayout))
	path := filepath.Join(g.outputDir, screenshotDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// sanitizeName makes a step name safe for use in a filename.
func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}
