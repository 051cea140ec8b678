package executor

import (
	"fmt"
	"strings"

	"github.com/ormasoftchile/webprobe/pkg/testcase"
)

// BuildInstruction renders the execution instruction handed to the
// automation agent. The required output format at the end is the contract
// the transcript parser relies on; changing it breaks parsing.
func BuildInstruction(tc *testcase.TestCase, toolNames []string) string {
	var b strings.Builder

	b.WriteString("请使用可用的 Playwright MCP 工具执行以下前端自动化测试用例：\n\n")
	b.WriteString("测试用例信息：\n")
	fmt.Fprintf(&b, "- 名称：%s\n", tc.Name)
	fmt.Fprintf(&b, "- 描述：%s\n", orDefault(tc.Description, "无描述"))
	fmt.Fprintf(&b, "- ID：%s\n\n", tc.ID)

	if len(toolNames) > 0 {
		fmt.Fprintf(&b, "可用工具：%s\n\n", strings.Join(toolNames, ", "))
	}

	b.WriteString("测试步骤：\n")
	b.WriteString(formatSteps(tc.Steps))
	b.WriteString("\n\n预期结果：\n")
	b.WriteString(formatExpectedResults(tc.ExpectedResults))

	b.WriteString(`

执行要求：
1. 使用合适的 Playwright 工具执行每个步骤
2. 在关键步骤使用截图工具记录页面状态
3. 记录每个步骤的执行结果和耗时
4. 如果遇到错误，详细记录错误信息并尝试继续执行后续步骤
5. 最后验证是否达到预期结果

请按照以下格式返回结果：

=== 测试执行报告 ===
测试状态: [PASSED/FAILED/ERROR]
总执行时间: [X.XX秒]
执行摘要: [简要描述测试执行情况]

=== 步骤执行详情 ===
步骤1: [步骤名称]
状态: [PASSED/FAILED/SKIPPED]
执行时间: [X.XX秒]
描述: [步骤详细描述]
使用工具: [使用的 Playwright 工具名称]
结果: [实际执行结果]
错误信息: [如有错误，详细描述]
---

=== 最终验证 ===
预期结果验证: [PASSED/FAILED]
验证详情: [详细说明是否达到预期结果]

=== 执行总结 ===
[总结整个测试执行过程]
`)

	return b.String()
}

func formatSteps(steps []testcase.Step) string {
	if len(steps) == 0 {
		return "无具体步骤"
	}
	var lines []string
	for i, step := range steps {
		if step.Data != "" {
			lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, step.Action, step.Data))
		} else {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, step.Action))
		}
	}
	return strings.Join(lines, "\n")
}

func formatExpectedResults(expected []string) string {
	switch len(expected) {
	case 0:
		return "无特定预期结果"
	case 1:
		return expected[0]
	default:
		var lines []string
		for _, e := range expected {
			lines = append(lines, "- "+e)
		}
		return strings.Join(lines, "\n")
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
