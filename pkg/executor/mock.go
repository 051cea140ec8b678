package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ormasoftchile/webprobe/pkg/testcase"
)

// MockAgent synthesizes a well-formed transcript from the test case's
// authored steps without touching a browser. Used for demos, dry runs,
// and pipeline tests.
type MockAgent struct {
	Case *testcase.TestCase
	// FailStep, when >0, marks that 1-based step as FAILED and the run
	// as a whole as failed.
	FailStep int
	// Delay simulates agent latency per execution.
	Delay time.Duration
}

func (m *MockAgent) Name() string { return "mock" }

// Execute ignores the instruction text and renders a transcript in the
// same section format a real agent is prompted to produce.
func (m *MockAgent) Execute(ctx context.Context, instruction string) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	overall := "PASSED"
	if m.FailStep > 0 {
		overall = "FAILED"
	}

	var b strings.Builder
	b.WriteString("=== 测试执行报告 ===\n")
	fmt.Fprintf(&b, "测试状态: %s\n", overall)
	b.WriteString("总执行时间: 2.35秒\n")
	b.WriteString("执行摘要: 模拟执行了所有测试步骤\n\n")
	b.WriteString("=== 步骤执行详情 ===")

	steps := m.Case.Steps
	if len(steps) == 0 {
		steps = []testcase.Step{{Action: "执行测试"}}
	}
	for i, step := range steps {
		name := step.Action
		if step.Data != "" {
			name = fmt.Sprintf("%s: %s", step.Action, step.Data)
		}
		status, errText := "PASSED", "无"
		if i+1 == m.FailStep {
			status = "FAILED"
			errText = "模拟的步骤失败"
		}
		execTime := 0.5 + float64(i+1)*0.3
		fmt.Fprintf(&b, "\n步骤%d: %s\n", i+1, name)
		fmt.Fprintf(&b, "状态: %s\n", status)
		fmt.Fprintf(&b, "执行时间: %.2f秒\n", execTime)
		b.WriteString("描述: 使用自动化工具执行了该步骤\n")
		b.WriteString("使用工具: playwright_mock\n")
		b.WriteString("结果: 操作完成\n")
		fmt.Fprintf(&b, "错误信息: %s\n---", errText)
	}

	b.WriteString("\n\n=== 最终验证 ===\n")
	fmt.Fprintf(&b, "预期结果验证: %s\n", overall)
	b.WriteString("验证详情: 模拟验证完成\n\n")
	b.WriteString("=== 执行总结 ===\n模拟执行结束\n")

	return b.String(), nil
}
