package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

// ReportInfo is the aggregate header of a persisted JSON report.
type ReportInfo struct {
	GeneratedAt time.Time `json:"generated_at"`
	TotalTests  int       `json:"total_tests"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	Skipped     int       `json:"skipped"`
}

// JSONReport is the current on-disk report shape. Older files may instead
// hold a bare array of results or a single result object; see history.go.
type JSONReport struct {
	ReportInfo  ReportInfo          `json:"report_info"`
	TestResults []result.TestResult `json:"test_results"`
}

// GenerateJSONReport writes the results as a timestamped JSON document
// under json/ and returns the path written.
func (g *Generator) GenerateJSONReport(results []result.TestResult) (string, error) {
	passed, failed, skipped := countByStatus(results)
	doc := JSONReport{
		ReportInfo: ReportInfo{
			GeneratedAt: g.now(),
			TotalTests:  len(results),
			Passed:      passed,
			Failed:      failed,
			Skipped:     skipped,
		},
		TestResults: results,
	}
	if doc.TestResults == nil {
		doc.TestResults = []result.TestResult{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json report: %w", err)
	}

	path := g.reportPath(jsonDir, "json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write json report: %w", err)
	}
	return path, nil
}

func countByStatus(results []result.TestResult) (passed, failed, skipped int) {
	for _, r := range results {
		switch r.Status {
		case result.StatusPassed:
			passed++
		case result.StatusFailed:
			failed++
		case result.StatusSkipped:
			skipped++
		}
	}
	return
}
