package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

// History returns all persisted test results, newest report file first,
// optionally filtered to one test id. Records keep file-then-intra-file
// order. Corrupt or unreadable files are skipped, not fatal.
//
// Three on-disk shapes are accepted: the current report_info wrapper
// (whose test_results may be a list or a single object), a bare array of
// results, and a single bare result object carrying a test_id field.
func (g *Generator) History(testID string) ([]result.TestResult, error) {
	return ScanHistory(g.JSONDir(), testID, g.log)
}

// ScanHistory reads every test_report_*.json under dir. Files are ordered
// by filename descending; the embedded timestamp makes that newest-first
// without opening the files.
func ScanHistory(dir, testID string, log *zap.Logger) ([]result.TestResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	files, err := filepath.Glob(filepath.Join(dir, "test_report_*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob report files: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))

	var history []result.TestResult
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Warn("skipping unreadable report file", zap.String("file", file), zap.Error(err))
			continue
		}
		records, err := decodeReportFile(data)
		if err != nil {
			log.Warn("skipping corrupt report file", zap.String("file", file), zap.Error(err))
			continue
		}
		for _, r := range records {
			if testID == "" || r.TestID == testID {
				history = append(history, r)
			}
		}
	}
	return history, nil
}

// decodeReportFile resolves the three legacy shapes into a flat record
// list. Shape detection is ordered: wrapper first, then bare array, then
// bare single result.
func decodeReportFile(data []byte) ([]result.TestResult, error) {
	var wrapper struct {
		TestResults json.RawMessage `json:"test_results"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.TestResults) > 0 {
		// Current shape; test_results may legally be a single object.
		var list []result.TestResult
		if err := json.Unmarshal(wrapper.TestResults, &list); err == nil {
			return list, nil
		}
		var single result.TestResult
		if err := json.Unmarshal(wrapper.TestResults, &single); err == nil {
			return []result.TestResult{single}, nil
		}
		return nil, fmt.Errorf("unrecognized test_results payload")
	}

	var list []result.TestResult
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single result.TestResult
	if err := json.Unmarshal(data, &single); err == nil && single.TestID != "" {
		return []result.TestResult{single}, nil
	}

	return nil, fmt.Errorf("unrecognized report shape")
}
