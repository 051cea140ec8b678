package report

import (
	"go.uber.org/zap"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

// GenerateReports produces the standard artifact set (html, json) and
// returns a kind → path map. A kind that fails to write is logged and
// omitted so the remaining kinds still land on disk.
func (g *Generator) GenerateReports(results []result.TestResult) map[string]string {
	files := make(map[string]string)

	if path, err := g.GenerateHTMLReport(results); err != nil {
		g.log.Warn("html report failed", zap.Error(err))
	} else {
		files["html"] = path
	}

	if path, err := g.GenerateJSONReport(results); err != nil {
		g.log.Warn("json report failed", zap.Error(err))
	} else {
		files["json"] = path
	}

	return files
}
