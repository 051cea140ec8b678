package tui

import (
	"fmt"
	"strings"

	"github.com/ormasoftchile/webprobe/pkg/executor"
	"github.com/ormasoftchile/webprobe/pkg/report"
	"github.com/ormasoftchile/webprobe/pkg/result"
)

// RenderRunSummary renders one execution outcome as a bordered terminal
// block for `webprobe run` output.
func RenderRunSummary(o *executor.Outcome) string {
	var b strings.Builder

	st := statusStyle(o.Result.Status)
	b.WriteString(headerStyle.Render("测试执行结果"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s  %s\n",
		st.Render(statusGlyph(o.Result.Status)),
		labelStyle.Render(o.Result.TestName),
		st.Render(strings.ToUpper(string(o.Result.Status))))
	fmt.Fprintf(&b, "%s %.2fs  %s %d 步骤 (%d 通过, %d 失败)\n",
		dimStyle.Render("耗时:"), o.Result.Duration,
		dimStyle.Render("共"), o.Summary.StepsCount, o.Summary.PassedSteps, o.Summary.FailedSteps)

	if o.Result.ErrorMessage != "" {
		fmt.Fprintf(&b, "%s %s\n", failedStyle.Render("错误:"), o.Result.ErrorMessage)
	}

	for _, step := range o.Result.Steps {
		ss := statusStyle(step.Status)
		fmt.Fprintf(&b, "  %s %s %s\n",
			ss.Render(statusGlyph(step.Status)),
			step.Name,
			dimStyle.Render(fmt.Sprintf("(%.2fs)", step.Duration)))
	}

	if len(o.ReportFiles) > 0 {
		b.WriteString(dimStyle.Render("报告文件:"))
		b.WriteString("\n")
		for kind, path := range o.ReportFiles {
			fmt.Fprintf(&b, "  %s: %s\n", kind, path)
		}
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderSuiteSummary renders the aggregate band for a suite run.
func RenderSuiteSummary(s report.Summary) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("套件执行汇总"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d  %s  %s  %s\n",
		labelStyle.Render("总数:"), s.TotalTests,
		passedStyle.Render(fmt.Sprintf("通过 %d", s.Passed)),
		failedStyle.Render(fmt.Sprintf("失败 %d", s.Failed)),
		skippedStyle.Render(fmt.Sprintf("跳过 %d", s.Skipped)))
	fmt.Fprintf(&b, "%s %.2f%%  %s %.2fs  %s %.2fs\n",
		labelStyle.Render("成功率:"), s.SuccessRate,
		dimStyle.Render("总耗时:"), s.TotalDuration,
		dimStyle.Render("平均:"), s.AverageDuration)
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderTrend renders a day-over-day trend table.
func RenderTrend(tr *report.TrendReport) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("最近 %d 天趋势", tr.Days)))
	b.WriteString("\n")
	if len(tr.DailyTrend) == 0 {
		b.WriteString(dimStyle.Render("窗口内没有执行记录"))
		return boxStyle.Render(b.String())
	}
	for _, day := range tr.DailyTrend {
		style := passedStyle
		if day.Failed > 0 {
			style = failedStyle
		}
		fmt.Fprintf(&b, "%s  %s  %s\n",
			day.Date,
			style.Render(fmt.Sprintf("%5.1f%%", day.SuccessRate)),
			dimStyle.Render(fmt.Sprintf("%d 次执行 (%d 通过, %d 失败, %d 跳过)",
				day.Total, day.Passed, day.Failed, day.Skipped)))
	}
	fmt.Fprintf(&b, "%s %d 次执行, 成功率 %.2f%%",
		labelStyle.Render("合计:"), tr.OverallStats.TotalTests, tr.OverallStats.SuccessRate)
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderHistoryLine renders one history record as a single list line.
func RenderHistoryLine(r result.TestResult) string {
	st := statusStyle(r.Status)
	return fmt.Sprintf("%s %s  %s  %s",
		st.Render(statusGlyph(r.Status)),
		r.StartTime.Format("2006-01-02 15:04:05"),
		labelStyle.Render(r.TestName),
		dimStyle.Render(fmt.Sprintf("%.2fs", r.Duration)))
}
