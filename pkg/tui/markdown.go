package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

var renderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0), // the viewport handles wrapping
	)
	if err == nil {
		renderer = r
	}
}

// renderMarkdown converts markdown to styled terminal output, falling
// back to the raw input if glamour is unavailable.
func renderMarkdown(md string) string {
	if renderer == nil || strings.TrimSpace(md) == "" {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// resultMarkdown formats one history record as a markdown document for
// the detail pane.
func resultMarkdown(r result.TestResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.TestName)
	if r.TestDescription != "" {
		fmt.Fprintf(&b, "%s\n\n", r.TestDescription)
	}
	fmt.Fprintf(&b, "- **状态**: %s\n", strings.ToUpper(string(r.Status)))
	fmt.Fprintf(&b, "- **开始**: %s\n", r.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **耗时**: %.2fs\n", r.Duration)
	if len(r.Tags) > 0 {
		fmt.Fprintf(&b, "- **标签**: %s\n", strings.Join(r.Tags, ", "))
	}
	if r.ErrorMessage != "" {
		fmt.Fprintf(&b, "\n> 错误: %s\n", r.ErrorMessage)
	}

	if len(r.Steps) > 0 {
		b.WriteString("\n## 执行步骤\n\n")
		for i, step := range r.Steps {
			fmt.Fprintf(&b, "%d. **%s** — %s (%.2fs)\n", i+1, step.Name, strings.ToUpper(string(step.Status)), step.Duration)
			if step.Description != "" {
				fmt.Fprintf(&b, "   %s\n", step.Description)
			}
			if step.ErrorMessage != "" {
				fmt.Fprintf(&b, "   错误: %s\n", step.ErrorMessage)
			}
		}
	}
	return b.String()
}
