package report

import (
	"sort"
	"time"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

// DailyTrend is one day's worth of execution statistics.
type DailyTrend struct {
	Date        string  `json:"date"` // yyyy-mm-dd
	Total       int     `json:"total"`
	Passed      int     `json:"passed"`
	Failed      int     `json:"failed"`
	Skipped     int     `json:"skipped"`
	SuccessRate float64 `json:"success_rate"` // 2 decimals
}

// TrendReport aggregates history by day for day-over-day views.
type TrendReport struct {
	Days         int          `json:"days"`
	DailyTrend   []DailyTrend `json:"daily_trend"` // oldest first
	OverallStats Summary      `json:"overall_stats"`
}

// GenerateTrendReport scans persisted history and groups results from the
// last `days` days by start date. Days with no executions are omitted.
func (g *Generator) GenerateTrendReport(days int) (*TrendReport, error) {
	history, err := g.History("")
	if err != nil {
		return nil, err
	}

	cutoff := g.now().AddDate(0, 0, -days)
	var window []result.TestResult
	byDay := make(map[string]*DailyTrend)
	for _, r := range history {
		if r.StartTime.Before(cutoff) {
			continue
		}
		window = append(window, r)
		day := r.StartTime.Format(time.DateOnly)
		t, ok := byDay[day]
		if !ok {
			t = &DailyTrend{Date: day}
			byDay[day] = t
		}
		t.Total++
		switch r.Status {
		case result.StatusPassed:
			t.Passed++
		case result.StatusFailed:
			t.Failed++
		case result.StatusSkipped:
			t.Skipped++
		}
	}

	report := &TrendReport{
		Days:         days,
		OverallStats: g.GenerateSummaryReport(window),
	}
	for _, t := range byDay {
		if t.Total > 0 {
			t.SuccessRate = round2(float64(t.Passed) / float64(t.Total) * 100)
		}
		report.DailyTrend = append(report.DailyTrend, *t)
	}
	sort.Slice(report.DailyTrend, func(i, j int) bool {
		return report.DailyTrend[i].Date < report.DailyTrend[j].Date
	})
	return report, nil
}
