package report

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

// FilterHistory keeps the records for which the expr predicate returns
// true. The expression sees one record at a time as an environment of
// plain fields, e.g.:
//
//	status == "failed" && duration > 2.0
//	test_name contains "login" || "smoke" in tags
func FilterHistory(records []result.TestResult, predicate string) ([]result.TestResult, error) {
	if predicate == "" {
		return records, nil
	}

	program, err := expr.Compile(predicate, expr.Env(filterEnv(result.TestResult{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", predicate, err)
	}

	var out []result.TestResult
	for _, r := range records {
		v, err := expr.Run(program, filterEnv(r))
		if err != nil {
			return nil, fmt.Errorf("eval filter %q: %w", predicate, err)
		}
		if keep, ok := v.(bool); ok && keep {
			out = append(out, r)
		}
	}
	return out, nil
}

func filterEnv(r result.TestResult) map[string]any {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"test_id":   r.TestID,
		"test_name": r.TestName,
		"status":    string(r.Status),
		"duration":  r.Duration,
		"steps":     len(r.Steps),
		"tags":      tags,
	}
}
