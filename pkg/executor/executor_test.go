package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ormasoftchile/webprobe/pkg/report"
	"github.com/ormasoftchile/webprobe/pkg/result"
	"github.com/ormasoftchile/webprobe/pkg/testcase"
)

func loginCase() *testcase.TestCase {
	return &testcase.TestCase{
		ID:   "t1",
		Name: "Login",
		Steps: []testcase.Step{
			{Action: "打开页面", Data: "https://x"},
			{Action: "点击登录"},
		},
		ExpectedResults: []string{"dashboard shown"},
		Tags:            []string{"smoke"},
	}
}

func newTestExecutor(t *testing.T, agent Agent) *Executor {
	t.Helper()
	gen, err := report.NewGenerator(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(agent, gen)
}

func TestExecuteTestCaseWithMockAgent(t *testing.T) {
	tc := loginCase()
	e := newTestExecutor(t, &MockAgent{Case: tc})
	outcome := e.ExecuteTestCase(context.Background(), tc)

	if outcome.Result.Status != result.StatusPassed {
		t.Errorf("expected passed, got %s", outcome.Result.Status)
	}
	if len(outcome.Result.Steps) != 2 {
		t.Fatalf("expected 2 parsed steps, got %d", len(outcome.Result.Steps))
	}
	if outcome.Result.Steps[0].Name != "打开页面: https://x" {
		t.Errorf("step name: got %q", outcome.Result.Steps[0].Name)
	}
	if outcome.Summary.PassedSteps != 2 || outcome.Summary.FailedSteps != 0 {
		t.Errorf("summary step counts: %+v", outcome.Summary)
	}
	for _, kind := range []string{"html", "json"} {
		if outcome.ReportFiles[kind] == "" {
			t.Errorf("missing %s report file", kind)
		}
	}
}

func TestExecuteTestCaseTags(t *testing.T) {
	tc := loginCase()
	e := newTestExecutor(t, &MockAgent{Case: tc})
	outcome := e.ExecuteTestCase(context.Background(), tc)

	want := map[string]bool{"automated": true, "frontend": true, "webprobe": true, "smoke": true}
	if len(outcome.Result.Tags) != len(want) {
		t.Fatalf("tags: %v", outcome.Result.Tags)
	}
	for _, tag := range outcome.Result.Tags {
		if !want[tag] {
			t.Errorf("unexpected tag %q", tag)
		}
	}
}

func TestExecuteTestCaseFailureInjection(t *testing.T) {
	tc := loginCase()
	e := newTestExecutor(t, &MockAgent{Case: tc, FailStep: 2})
	outcome := e.ExecuteTestCase(context.Background(), tc)

	if outcome.Result.Status != result.StatusFailed {
		t.Errorf("expected failed, got %s", outcome.Result.Status)
	}
	if outcome.Result.Steps[1].Status != result.StatusFailed {
		t.Errorf("step 2 should be failed, got %s", outcome.Result.Steps[1].Status)
	}
	if outcome.Result.Steps[1].ErrorMessage == "" {
		t.Error("failed step should carry its error message")
	}
}

func TestExecuteTestCaseAgentError(t *testing.T) {
	tc := loginCase()
	boom := AgentFunc{Label: "broken", Fn: func(ctx context.Context, _ string) (string, error) {
		return "", errors.New("browser did not start")
	}}
	e := newTestExecutor(t, boom)
	outcome := e.ExecuteTestCase(context.Background(), tc)

	if outcome.Result.Status != result.StatusFailed {
		t.Errorf("agent error must yield failed result, got %s", outcome.Result.Status)
	}
	if outcome.Result.ErrorMessage != "browser did not start" {
		t.Errorf("error message: %q", outcome.Result.ErrorMessage)
	}
	if len(outcome.ReportFiles) != 0 {
		t.Errorf("no reports expected on agent failure, got %v", outcome.ReportFiles)
	}
	if outcome.Summary.Error == "" {
		t.Error("summary should surface the error text")
	}
}

func TestExecuteSuite(t *testing.T) {
	tc := loginCase()
	other := &testcase.TestCase{ID: "t2", Name: "Search", Steps: []testcase.Step{{Action: "搜索"}}}
	e := newTestExecutor(t, &MockAgent{Case: tc})

	outcome := e.ExecuteSuite(context.Background(), []*testcase.TestCase{tc, other})
	if len(outcome.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(outcome.Results))
	}
	if outcome.Summary.TotalTests != 2 {
		t.Errorf("summary total: %d", outcome.Summary.TotalTests)
	}
	if outcome.SuiteInfo.TotalTests != 2 || outcome.SuiteInfo.Duration < 0 {
		t.Errorf("suite info: %+v", outcome.SuiteInfo)
	}
	if outcome.ReportFiles["json"] == "" {
		t.Error("suite should write a combined json report")
	}
}

func TestBuildInstructionContainsContract(t *testing.T) {
	tc := loginCase()
	got := BuildInstruction(tc, []string{"playwright_navigate", "playwright_click"})
	for _, want := range []string{
		"Login",
		"1. 打开页面: https://x",
		"2. 点击登录",
		"dashboard shown",
		"playwright_navigate",
		"=== 步骤执行详情 ===",
		"=== 最终验证 ===",
		"测试状态: [PASSED/FAILED/ERROR]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q", want)
		}
	}
}

func TestBuildInstructionDefaults(t *testing.T) {
	tc := &testcase.TestCase{ID: "t9", Name: "Empty"}
	got := BuildInstruction(tc, nil)
	if !strings.Contains(got, "无具体步骤") {
		t.Error("expected no-steps placeholder")
	}
	if !strings.Contains(got, "无特定预期结果") {
		t.Error("expected no-expected-results placeholder")
	}
	if !strings.Contains(got, "无描述") {
		t.Error("expected no-description placeholder")
	}
}
