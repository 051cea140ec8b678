// Package report renders test results into durable artifacts (HTML, JSON,
// Allure) and aggregates persisted results into summaries and trends.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Subdirectories under the output root. This layout is a contract: the
// dashboard and history scanners address these paths directly.
const (
	htmlDir       = "html"
	jsonDir       = "json"
	allureDir     = "allure"
	screenshotDir = "screenshots"
)

const fileTimestampLayout = "20060102_150405"

// Generator writes report artifacts under a single output root. It holds
// no cross-call state beyond the root path and is safe to share between
// sequential runs.
type Generator struct {
	outputDir string
	log       *zap.Logger
	now       func() time.Time
}

// NewGenerator creates the output directory tree (html/, json/, allure/,
// screenshots/) under outputDir.
func NewGenerator(outputDir string) (*Generator, error) {
	for _, sub := range []string{"", htmlDir, jsonDir, allureDir, screenshotDir} {
		if err := os.MkdirAll(filepath.Join(outputDir, sub), 0755); err != nil {
			return nil, fmt.Errorf("create report directory: %w", err)
		}
	}
	return &Generator{
		outputDir: outputDir,
		log:       zap.NewNop(),
		now:       time.Now,
	}, nil
}

// SetLogger replaces the no-op default logger.
func (g *Generator) SetLogger(log *zap.Logger) {
	if log != nil {
		g.log = log
	}
}

// OutputDir returns the report root.
func (g *Generator) OutputDir() string { return g.outputDir }

// JSONDir returns the directory scanned by the history reader.
func (g *Generator) JSONDir() string { return filepath.Join(g.outputDir, jsonDir) }

// reportPath builds a timestamped filename under the given subdirectory.
// Two reports within the same second would collide on the timestamp alone,
// so an existing target gets a numeric suffix instead of being overwritten.
func (g *Generator) reportPath(sub, ext string) string {
	ts := g.now().Format(fileTimestampLayout)
	path := filepath.Join(g.outputDir, sub, fmt.Sprintf("test_report_%s.%s", ts, ext))
	for i := 2; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(g.outputDir, sub, fmt.Sprintf("test_report_%s_%d.%s", ts, i, ext))
	}
}
