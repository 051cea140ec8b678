package report

import (
	"math"
	"time"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

// Summary aggregates a snapshot of results. Pure computation — callers
// persist or display it as needed.
type Summary struct {
	TotalTests      int       `json:"total_tests"`
	Passed          int       `json:"passed"`
	Failed          int       `json:"failed"`
	Skipped         int       `json:"skipped"`
	SuccessRate     float64   `json:"success_rate"`     // passed/total×100, 2 decimals
	TotalDuration   float64   `json:"total_duration"`   // seconds
	AverageDuration float64   `json:"average_duration"` // seconds
	GeneratedAt     time.Time `json:"generated_at"`
}

// GenerateSummaryReport computes aggregate counts and rates. Empty input
// yields all-zero counts and a 0 success rate.
func (g *Generator) GenerateSummaryReport(results []result.TestResult) Summary {
	s := Summary{GeneratedAt: g.now()}
	if len(results) == 0 {
		return s
	}

	s.TotalTests = len(results)
	s.Passed, s.Failed, s.Skipped = countByStatus(results)
	var total float64
	for _, r := range results {
		total += r.Duration
	}
	s.SuccessRate = round2(float64(s.Passed) / float64(s.TotalTests) * 100)
	s.TotalDuration = round2(total)
	s.AverageDuration = round2(total / float64(s.TotalTests))
	return s
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
