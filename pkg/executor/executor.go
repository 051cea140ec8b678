package executor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ormasoftchile/webprobe/pkg/report"
	"github.com/ormasoftchile/webprobe/pkg/result"
	"github.com/ormasoftchile/webprobe/pkg/testcase"
	"github.com/ormasoftchile/webprobe/pkg/transcript"
)

// Standard tags stamped on every automated run.
var standardTags = []string{"automated", "frontend", "webprobe"}

// Executor runs test cases through an agent and produces reports. One
// executor serves sequential runs; each run owns its own result builder.
type Executor struct {
	agent   Agent
	reports *report.Generator
	session *MCPSession // optional, for tool inventory in instructions
	log     *zap.Logger
}

// Outcome is what one execution attempt hands back to callers.
type Outcome struct {
	Result      result.TestResult `json:"test_result"`
	RawOutput   string            `json:"raw_output"`
	ReportFiles map[string]string `json:"report_files"`
	Summary     ExecutionSummary  `json:"execution_summary"`
}

// ExecutionSummary is the caller-facing digest of one run.
type ExecutionSummary struct {
	Status      result.Status `json:"status"`
	Duration    float64       `json:"duration"`
	StepsCount  int           `json:"steps_count"`
	PassedSteps int           `json:"passed_steps"`
	FailedSteps int           `json:"failed_steps"`
	Error       string        `json:"error,omitempty"`
	Agent       string        `json:"agent"`
	ToolsCount  int           `json:"tools_count"`
}

// SuiteOutcome aggregates a whole suite execution.
type SuiteOutcome struct {
	Results     []result.TestResult `json:"test_results"`
	ReportFiles map[string]string   `json:"report_files"`
	Summary     report.Summary      `json:"summary"`
	SuiteInfo   SuiteInfo           `json:"suite_info"`
}

// SuiteInfo records the wall-clock window of a suite run.
type SuiteInfo struct {
	TotalTests int       `json:"total_tests"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Duration   float64   `json:"duration"` // seconds
	Agent      string    `json:"agent"`
}

// New creates an executor. The generator must be non-nil; session and
// logger are optional.
func New(agent Agent, gen *report.Generator, opts ...Option) *Executor {
	e := &Executor{
		agent:   agent,
		reports: gen,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option configures an Executor.
type Option func(*Executor)

// WithSession attaches a live MCP session whose tool inventory is
// included in agent instructions.
func WithSession(s *MCPSession) Option {
	return func(e *Executor) { e.session = s }
}

// WithLogger replaces the no-op default logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Executor) {
		if log != nil {
			e.log = log
		}
	}
}

// ExecuteTestCase runs one test case end to end: instruction → agent →
// transcript parse → immutable result → report files.
//
// An agent failure is a normal, user-visible outcome, not an error: it
// yields a failed result carrying the error text and an empty report map.
func (e *Executor) ExecuteTestCase(ctx context.Context, tc *testcase.TestCase) *Outcome {
	b := result.NewBuilder(tc.ID, tc.Name, tc.Description)
	for _, tag := range standardTags {
		b.AddTag(tag)
	}
	for _, tag := range tc.Tags {
		b.AddTag(tag)
	}

	var toolNames []string
	if e.session != nil {
		toolNames = e.session.ToolNames()
	}
	instruction := BuildInstruction(tc, toolNames)

	e.log.Info("executing test case",
		zap.String("test_id", tc.ID),
		zap.String("test_name", tc.Name),
		zap.String("agent", e.agent.Name()),
		zap.Int("tools", len(toolNames)))

	raw, err := e.agent.Execute(ctx, instruction)
	if err != nil {
		e.log.Warn("agent execution failed", zap.String("test_id", tc.ID), zap.Error(err))
		b.SetError(err.Error())
		res := b.Build()
		return &Outcome{
			Result:      res,
			RawOutput:   "执行失败: " + err.Error(),
			ReportFiles: map[string]string{},
			Summary:     e.summarize(res, err.Error(), len(toolNames)),
		}
	}

	transcript.Parse(raw, b)
	res := b.Build()

	files := e.reports.GenerateReports([]result.TestResult{res})

	e.log.Info("test case finished",
		zap.String("test_id", tc.ID),
		zap.String("status", string(res.Status)),
		zap.Float64("duration", res.Duration),
		zap.Int("steps", len(res.Steps)))

	return &Outcome{
		Result:      res,
		RawOutput:   raw,
		ReportFiles: files,
		Summary:     e.summarize(res, "", len(toolNames)),
	}
}

// ExecuteSuite runs every case in order and writes one combined report
// over all results.
func (e *Executor) ExecuteSuite(ctx context.Context, cases []*testcase.TestCase) *SuiteOutcome {
	start := time.Now()
	results := make([]result.TestResult, 0, len(cases))
	for _, tc := range cases {
		outcome := e.ExecuteTestCase(ctx, tc)
		results = append(results, outcome.Result)
	}
	end := time.Now()

	return &SuiteOutcome{
		Results:     results,
		ReportFiles: e.reports.GenerateReports(results),
		Summary:     e.reports.GenerateSummaryReport(results),
		SuiteInfo: SuiteInfo{
			TotalTests: len(cases),
			StartTime:  start,
			EndTime:    end,
			Duration:   end.Sub(start).Seconds(),
			Agent:      e.agent.Name(),
		},
	}
}

func (e *Executor) summarize(res result.TestResult, errText string, tools int) ExecutionSummary {
	passed, failed, _ := res.StepCounts()
	return ExecutionSummary{
		Status:      res.Status,
		Duration:    res.Duration,
		StepsCount:  len(res.Steps),
		PassedSteps: passed,
		FailedSteps: failed,
		Error:       errText,
		Agent:       e.agent.Name(),
		ToolsCount:  tools,
	}
}
