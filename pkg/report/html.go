package report

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/ormasoftchile/webprobe/pkg/result"
)

const timeDisplayLayout = "2006-01-02 15:04:05"

// htmlReportData is the root context for the HTML template.
type htmlReportData struct {
	ReportTime   string
	TotalTests   int
	PassedTests  int
	FailedTests  int
	SkippedTests int
	SuccessRate  float64 // 1 decimal
	TestResults  []result.TestResult
}

var htmlFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"fmtTime": func(t interface{ Format(string) string }) string {
		return t.Format(timeDisplayLayout)
	},
}

var htmlTemplate = template.Must(template.New("report").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>前端自动化测试报告</title>
    <style>
        body { font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 20px; background-color: #f5f5f5; }
        .container { max-width: 1200px; margin: 0 auto; background: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 2.5em; }
        .header .subtitle { opacity: 0.9; margin-top: 10px; }
        .summary { display: flex; justify-content: space-around; padding: 30px; background: #f8f9fa; }
        .summary-item { text-align: center; }
        .summary-item .number { font-size: 2em; font-weight: bold; margin-bottom: 5px; }
        .summary-item .label { color: #666; text-transform: uppercase; font-size: 0.9em; }
        .passed { color: #28a745; }
        .failed { color: #dc3545; }
        .skipped { color: #ffc107; }
        .test-results { padding: 30px; }
        .test-item { border: 1px solid #e9ecef; border-radius: 6px; margin-bottom: 20px; overflow: hidden; }
        .test-header { padding: 20px; background: #f8f9fa; cursor: pointer; display: flex; justify-content: space-between; align-items: center; }
        .test-header:hover { background: #e9ecef; }
        .test-title { font-size: 1.2em; font-weight: bold; }
        .test-meta { color: #666; font-size: 0.9em; margin-top: 5px; }
        .test-status { padding: 4px 12px; border-radius: 20px; color: white; font-size: 0.8em; font-weight: bold; }
        .test-status.passed { background: #28a745; }
        .test-status.failed { background: #dc3545; }
        .test-status.skipped { background: #ffc107; }
        .test-details { padding: 20px; display: none; }
        .test-details.show { display: block; }
        .steps { margin-top: 20px; }
        .step { border-left: 3px solid #e9ecef; padding: 15px; margin-bottom: 10px; background: #f8f9fa; }
        .step.passed { border-left-color: #28a745; }
        .step.failed { border-left-color: #dc3545; }
        .step.skipped { border-left-color: #ffc107; }
        .step-header { font-weight: bold; margin-bottom: 8px; }
        .step-description { color: #666; margin-bottom: 8px; }
        .step-meta { font-size: 0.8em; color: #999; }
        .error-message { background: #f8d7da; color: #721c24; padding: 15px; border-radius: 4px; margin-top: 10px; }
        .screenshot { margin-top: 10px; }
        .screenshot img { max-width: 100%; border-radius: 4px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); }
        .tags { margin-top: 10px; }
        .tag { background: #007bff; color: white; padding: 2px 8px; border-radius: 12px; font-size: 0.8em; margin-right: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>前端自动化测试报告</h1>
            <div class="subtitle">生成时间: {{.ReportTime}}</div>
        </div>

        <div class="summary">
            <div class="summary-item">
                <div class="number">{{.TotalTests}}</div>
                <div class="label">总测试数</div>
            </div>
            <div class="summary-item">
                <div class="number passed">{{.PassedTests}}</div>
                <div class="label">通过</div>
            </div>
            <div class="summary-item">
                <div class="number failed">{{.FailedTests}}</div>
                <div class="label">失败</div>
            </div>
            <div class="summary-item">
                <div class="number skipped">{{.SkippedTests}}</div>
                <div class="label">跳过</div>
            </div>
            <div class="summary-item">
                <div class="number">{{printf "%.1f" .SuccessRate}}%</div>
                <div class="label">成功率</div>
            </div>
        </div>

        <div class="test-results">
            <h2>测试结果详情</h2>
            {{range $i, $test := .TestResults}}
            <div class="test-item">
                <div class="test-header" onclick="toggleDetails('test-{{$i}}')">
                    <div>
                        <div class="test-title">{{$test.TestName}}</div>
                        <div class="test-meta">
                            {{$test.TestDescription}} |
                            执行时间: {{printf "%.2f" $test.Duration}}s |
                            开始时间: {{fmtTime $test.StartTime}}
                        </div>
                        {{if $test.Tags}}
                        <div class="tags">
                            {{range $test.Tags}}<span class="tag">{{.}}</span>{{end}}
                        </div>
                        {{end}}
                    </div>
                    <div class="test-status {{$test.Status}}">{{upper (printf "%s" $test.Status)}}</div>
                </div>
                <div class="test-details" id="test-{{$i}}">
                    {{if $test.ErrorMessage}}
                    <div class="error-message">
                        <strong>错误信息:</strong><br>
                        {{$test.ErrorMessage}}
                    </div>
                    {{end}}

                    <div class="steps">
                        <h4>执行步骤:</h4>
                        {{range $test.Steps}}
                        <div class="step {{.Status}}">
                            <div class="step-header">{{.Name}}</div>
                            <div class="step-description">{{.Description}}</div>
                            <div class="step-meta">
                                状态: {{upper (printf "%s" .Status)}} |
                                耗时: {{printf "%.2f" .Duration}}s |
                                时间: {{fmtTime .Timestamp}}
                            </div>
                            {{if .ErrorMessage}}
                            <div class="error-message">{{.ErrorMessage}}</div>
                            {{end}}
                            {{if .Screenshot}}
                            <div class="screenshot">
                                <img src="data:image/png;base64,{{.Screenshot}}" alt="步骤截图">
                            </div>
                            {{end}}
                        </div>
                        {{end}}
                    </div>
                </div>
            </div>
            {{end}}
        </div>
    </div>

    <script>
        function toggleDetails(id) {
            const element = document.getElementById(id);
            element.classList.toggle('show');
        }
    </script>
</body>
</html>
`))

// GenerateHTMLReport renders a self-contained HTML document under html/
// and returns the path written. Screenshots are inlined as base64 images.
func (g *Generator) GenerateHTMLReport(results []result.TestResult) (string, error) {
	passed, failed, skipped := countByStatus(results)
	data := htmlReportData{
		ReportTime:   g.now().Format(timeDisplayLayout),
		TotalTests:   len(results),
		PassedTests:  passed,
		FailedTests:  failed,
		SkippedTests: skipped,
		TestResults:  results,
	}
	if data.TotalTests > 0 {
		data.SuccessRate = round1(float64(passed) / float64(data.TotalTests) * 100)
	}

	path := g.reportPath(htmlDir, "html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create html report: %w", err)
	}
	defer f.Close()

	if err := htmlTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return path, nil
}
