// Package transcript extracts structured step outcomes from the free-text
// execution report produced by the browser automation agent.
//
// The transcript comes from a generative model and is treated as untrusted:
// the agent is prompted to emit a fixed section layout (see executor's
// instruction template) but the exact formatting drifts run to run. Every
// field is matched by pattern with a safe default, and Parse never fails —
// malformed input degrades to a single fallback step.
package transcript

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

// Section and field markers the agent is instructed to emit.
const (
	markerStatusPassed = "测试状态: PASSED"
	markerStatusFailed = "测试状态: FAILED"
	markerStatusError  = "测试状态: ERROR"

	fallbackStepName    = "测试执行"
	fallbackStepDesc    = "使用 MCP Playwright 执行自动化测试"
	genericFailureError = "测试执行失败"
	defaultStepName     = "未知步骤"
)

var (
	stepsSectionRe = regexp.MustCompile(`(?s)=== 步骤执行详情 ===(.*?)=== 最终验证 ===`)
	blockSplitRe   = regexp.MustCompile(`---+`)

	stepNameRe = regexp.MustCompile(`步骤\d+:\s*(.+)`)
	statusRe   = regexp.MustCompile(`状态:\s*(?i:(PASSED|FAILED|SKIPPED))`)
	durationRe = regexp.MustCompile(`执行时间:\s*([\d.]+)\s*秒`)
	descRe     = regexp.MustCompile(`描述:\s*(.+)`)
	toolRe     = regexp.MustCompile(`使用工具:\s*(.+)`)
	errorRe    = regexp.MustCompile(`错误信息:\s*(.+)`)

	// Vocabulary scanned for when no structured region exists at all.
	failureWords = []string{"失败", "错误", "failed", "error"}
)

// Parse populates the builder from a raw agent transcript. It never
// returns an error and never panics: any malformed structure resolves to
// documented defaults, and an unexpected panic is replaced by the same
// fallback step used when no step section is found. Every parse adds at
// least one step.
func Parse(raw string, b *result.Builder) {
	defer func() {
		if r := recover(); r != nil {
			addFallbackStep(raw, b)
		}
	}()

	parseOverallStatus(raw, b)
	parseStepDetails(raw, b)
}

// parseOverallStatus reacts to the literal status marker line. FAILED or
// ERROR forces the run to failed via the builder; PASSED (or no marker)
// leaves the status to be derived from steps.
func parseOverallStatus(raw string, b *result.Builder) {
	if strings.Contains(raw, markerStatusFailed) || strings.Contains(raw, markerStatusError) {
		b.SetError(genericFailureError)
	}
}

// parseStepDetails locates the delimited step region and parses each
// dash-separated block. A missing region yields the fallback step so the
// result is never empty.
func parseStepDetails(raw string, b *result.Builder) {
	m := stepsSectionRe.FindStringSubmatch(raw)
	if m == nil {
		addFallbackStep(raw, b)
		return
	}

	added := 0
	for _, block := range blockSplitRe.Split(m[1], -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		b.AddStep(parseStepBlock(block))
		added++
	}
	if added == 0 {
		addFallbackStep(raw, b)
	}
}

// parseStepBlock extracts one step from a block. Each field has an
// independent extract-or-default helper so one missing label never
// corrupts its siblings.
func parseStepBlock(block string) result.StepInput {
	desc := extractDescription(block)
	if tool := extractTool(block); tool != "" {
		desc += " (使用工具: " + tool + ")"
	}
	return result.StepInput{
		Name:         extractName(block),
		Description:  desc,
		Status:       extractStatus(block),
		Duration:     extractDuration(block),
		ErrorMessage: extractError(block),
	}
}

func extractName(block string) string {
	if m := stepNameRe.FindStringSubmatch(block); m != nil {
		return strings.TrimSpace(m[1])
	}
	return defaultStepName
}

func extractStatus(block string) result.Status {
	if m := statusRe.FindStringSubmatch(block); m != nil {
		s := result.Status(strings.ToLower(m[1]))
		if s.Valid() {
			return s
		}
	}
	return result.StatusPassed
}

func extractDuration(block string) float64 {
	if m := durationRe.FindStringSubmatch(block); m != nil {
		if d, err := strconv.ParseFloat(m[1], 64); err == nil {
			return d
		}
	}
	return 0
}

func extractDescription(block string) string {
	if m := descRe.FindStringSubmatch(block); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractTool(block string) string {
	if m := toolRe.FindStringSubmatch(block); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractError(block string) string {
	if m := errorRe.FindStringSubmatch(block); m != nil {
		text := strings.TrimSpace(m[1])
		if text != "" && text != "无" && !strings.EqualFold(text, "none") {
			return text
		}
	}
	return ""
}

// addFallbackStep records the single generic step used when the transcript
// carries no recognizable step section. Status is inferred by scanning the
// whole transcript for failure vocabulary.
func addFallbackStep(raw string, b *result.Builder) {
	status := result.StatusPassed
	lower := strings.ToLower(raw)
	for _, w := range failureWords {
		if strings.Contains(lower, w) {
			status = result.StatusFailed
			break
		}
	}
	b.AddStep(result.StepInput{
		Name:        fallbackStepName,
		Description: fallbackStepDesc,
		Status:      status,
		Duration:    0,
	})
}
