package transcript

import (
	"strings"
	"testing"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

const wellFormed = `=== 测试执行报告 ===
测试状态: PASSED
总执行时间: 3.20秒
执行摘要: 登录流程执行成功

=== 步骤执行详情 ===
步骤1: 打开页面
状态: PASSED
执行时间: 1.50秒
描述: ok
使用工具: playwright_navigate
结果: 页面加载完成
错误信息: 无
---

步骤2: 输入用户名
状态: PASSED
执行时间: 0.80秒
描述: 填写登录表单
---

=== 最终验证 ===
预期结果验证: PASSED
`

func parse(t *testing.T, raw string) result.TestResult {
	t.Helper()
	b := result.NewBuilder("t1", "Login", "")
	Parse(raw, b)
	return b.Build()
}

func TestParseWellFormedTranscript(t *testing.T) {
	r := parse(t, wellFormed)
	if r.Status != result.StatusPassed {
		t.Errorf("expected passed, got %s", r.Status)
	}
	if len(r.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(r.Steps))
	}
	s := r.Steps[0]
	if s.Name != "打开页面" {
		t.Errorf("step name: got %q", s.Name)
	}
	if s.Duration != 1.50 {
		t.Errorf("duration: got %f", s.Duration)
	}
	if !strings.Contains(s.Description, "ok") || !strings.Contains(s.Description, "(使用工具: playwright_navigate)") {
		t.Errorf("description should carry tool info: %q", s.Description)
	}
	if s.ErrorMessage != "" {
		t.Errorf("placeholder 无 must not be stored as error, got %q", s.ErrorMessage)
	}
	if r.Steps[1].Name != "输入用户名" {
		t.Errorf("second step name: got %q", r.Steps[1].Name)
	}
}

func TestParseFailedMarkerForcesFailure(t *testing.T) {
	raw := strings.Replace(wellFormed, "测试状态: PASSED", "测试状态: FAILED", 1)
	r := parse(t, raw)
	if r.Status != result.StatusFailed {
		t.Errorf("FAILED marker must force failed even with passing steps, got %s", r.Status)
	}
	if r.ErrorMessage == "" {
		t.Error("expected a generic top-level error message")
	}
}

func TestParseErrorMarkerForcesFailure(t *testing.T) {
	raw := strings.Replace(wellFormed, "测试状态: PASSED", "测试状态: ERROR", 1)
	if r := parse(t, raw); r.Status != result.StatusFailed {
		t.Errorf("ERROR marker must force failed, got %s", r.Status)
	}
}

func TestParseFailedStepSticks(t *testing.T) {
	raw := `=== 步骤执行详情 ===
步骤1: 打开页面
状态: FAILED
执行时间: 2.00秒
错误信息: 页面加载超时
---
步骤2: 重试
状态: PASSED
执行时间: 1.00秒
---
=== 最终验证 ===`
	r := parse(t, raw)
	if r.Status != result.StatusFailed {
		t.Errorf("expected failed, got %s", r.Status)
	}
	if r.Steps[0].ErrorMessage != "页面加载超时" {
		t.Errorf("step error: got %q", r.Steps[0].ErrorMessage)
	}
}

func TestParseDefaultsForMissingLabels(t *testing.T) {
	raw := `=== 步骤执行详情 ===
something the model wrote with no labels at all
---
=== 最终验证 ===`
	r := parse(t, raw)
	if len(r.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(r.Steps))
	}
	s := r.Steps[0]
	if s.Name != "未知步骤" {
		t.Errorf("name default: got %q", s.Name)
	}
	if s.Status != result.StatusPassed {
		t.Errorf("status default: got %s", s.Status)
	}
	if s.Duration != 0 {
		t.Errorf("duration default: got %f", s.Duration)
	}
	if s.Description != "" {
		t.Errorf("description default: got %q", s.Description)
	}
}

func TestParseUnparsableDurationDefaultsToZero(t *testing.T) {
	raw := `=== 步骤执行详情 ===
步骤1: 打开页面
状态: PASSED
执行时间: 很快秒
---
=== 最终验证 ===`
	r := parse(t, raw)
	if r.Steps[0].Duration != 0 {
		t.Errorf("expected 0 for unparsable duration, got %f", r.Steps[0].Duration)
	}
}

func TestParseCaseInsensitiveStatus(t *testing.T) {
	raw := `=== 步骤执行详情 ===
步骤1: 打开页面
状态: skipped
---
=== 最终验证 ===`
	r := parse(t, raw)
	if r.Steps[0].Status != result.StatusSkipped {
		t.Errorf("expected skipped, got %s", r.Steps[0].Status)
	}
	if r.Status != result.StatusSkipped {
		t.Errorf("overall should be skipped, got %s", r.Status)
	}
}

func TestParseNoMarkersYieldsFallbackStep(t *testing.T) {
	r := parse(t, "The agent wandered off and wrote plain prose about the page.")
	if len(r.Steps) != 1 {
		t.Fatalf("expected exactly one fallback step, got %d", len(r.Steps))
	}
	if r.Steps[0].Name != "测试执行" {
		t.Errorf("fallback step name: got %q", r.Steps[0].Name)
	}
	if r.Status != result.StatusPassed {
		t.Errorf("prose without failure vocabulary should pass, got %s", r.Status)
	}
}

func TestParseFallbackDetectsFailureVocabulary(t *testing.T) {
	for _, raw := range []string{
		"the run ended with an ERROR somewhere",
		"执行过程中出现失败",
		"页面返回了错误信息",
		"something Failed midway",
	} {
		r := parse(t, raw)
		if r.Status != result.StatusFailed {
			t.Errorf("%q: expected failed fallback, got %s", raw, r.Status)
		}
	}
}

func TestParseNeverRaises(t *testing.T) {
	inputs := []string{
		"",
		"\x00\xff\xfe binary garbage \x01",
		"=== 步骤执行详情 ===",
		"=== 步骤执行详情 === === 最终验证 ===",
		strings.Repeat("---", 1000),
		"状态: PASSED",
	}
	for _, raw := range inputs {
		b := result.NewBuilder("t1", "x", "")
		Parse(raw, b)
		if len(b.Steps()) == 0 {
			t.Errorf("input %q: every parse must yield at least one step", raw)
		}
	}
}

func TestParseEmptyRegionYieldsFallback(t *testing.T) {
	r := parse(t, "=== 步骤执行详情 ===\n\n=== 最终验证 ===")
	if len(r.Steps) != 1 || r.Steps[0].Name != "测试执行" {
		t.Errorf("empty step region should produce the fallback step, got %+v", r.Steps)
	}
}

func TestParseEndToEndScenario(t *testing.T) {
	raw := "测试状态: PASSED ... === 步骤执行详情 === 步骤1: 打开页面\n状态: PASSED\n执行时间: 1.50秒\n描述: ok\n--- === 最终验证 ==="
	r := parse(t, raw)
	if r.Status != result.StatusPassed {
		t.Errorf("expected passed, got %s", r.Status)
	}
	if len(r.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(r.Steps))
	}
	if r.Steps[0].Name != "打开页面" || r.Steps[0].Duration != 1.50 {
		t.Errorf("unexpected step: %+v", r.Steps[0])
	}
}
