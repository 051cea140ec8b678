package report

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ormasoftchile/webprobe/pkg/result"
)

// Allure result-file shapes. Consumed by the Allure CLI, not by our own
// report viewer, so field names follow the Allure 2 schema.
type allureResult struct {
	UUID          string               `json:"uuid"`
	Name          string               `json:"name"`
	FullName      string               `json:"fullName"`
	Description   string               `json:"description"`
	Status        string               `json:"status"`
	Start         int64                `json:"start"` // unix millis
	Stop          int64                `json:"stop"`  // unix millis
	Labels        []allureLabel        `json:"labels"`
	Steps         []allureStep         `json:"steps"`
	StatusDetails *allureStatusDetails `json:"statusDetails,omitempty"`
}

type allureLabel struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type allureStep struct {
	Name        string             `json:"name"`
	Status      string             `json:"status"`
	Start       int64              `json:"start"`
	Stop        int64              `json:"stop"`
	Attachments []allureAttachment `json:"attachments"`
}

type allureAttachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

type allureStatusDetails struct {
	Message string `json:"message"`
	Trace   string `json:"trace"`
}

// GenerateAllureReport writes one Allure result file per test into the
// allure/ directory and returns that directory. Step screenshots are
// decoded and written as sibling attachment files referenced by name.
func (g *Generator) GenerateAllureReport(results []result.TestResult) (string, error) {
	dir := filepath.Join(g.outputDir, allureDir)

	for _, test := range results {
		res := allureResult{
			UUID:        uuid.NewString(),
			Name:        test.TestName,
			FullName:    fmt.Sprintf("%s#%s", test.TestName, test.TestID),
			Description: test.TestDescription,
			Status:      allureStatus(test.Status),
			Start:       test.StartTime.UnixMilli(),
			Stop:        test.EndTime.UnixMilli(),
			Labels: []allureLabel{
				{Name: "suite", Value: "Frontend Tests"},
				{Name: "testClass", Value: "AutomationTest"},
				{Name: "testMethod", Value: test.TestName},
			},
			Steps: []allureStep{},
		}
		for _, tag := range test.Tags {
			res.Labels = append(res.Labels, allureLabel{Name: "tag", Value: tag})
		}
		if test.ErrorMessage != "" {
			res.StatusDetails = &allureStatusDetails{
				Message: test.ErrorMessage,
				Trace:   test.ErrorMessage,
			}
		}

		for _, step := range test.Steps {
			start := step.Timestamp.UnixMilli()
			as := allureStep{
				Name:        step.Name,
				Status:      allureStatus(step.Status),
				Start:       start,
				Stop:        start + int64(step.Duration*1000),
				Attachments: []allureAttachment{},
			}
			if step.Screenshot != "" {
				name, err := g.writeAllureAttachment(dir, step.Screenshot)
				if err != nil {
					return "", err
				}
				as.Attachments = append(as.Attachments, allureAttachment{
					Name:   "Screenshot",
					Source: name,
					Type:   "image/png",
				})
			}
			res.Steps = append(res.Steps, as)
		}

		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal allure result: %w", err)
		}
		path := filepath.Join(dir, res.UUID+"-result.json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", fmt.Errorf("write allure result: %w", err)
		}
	}

	return dir, nil
}

// writeAllureAttachment decodes a base64 screenshot and writes it under a
// fresh attachment name, returning the name for the result file to reference.
func (g *Generator) writeAllureAttachment(dir, screenshot string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(screenshot)
	if err != nil {
		return "", fmt.Errorf("decode screenshot: %w", err)
	}
	name := uuid.NewString() + "-attachment.png"
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}
	return name, nil
}

func allureStatus(s result.Status) string {
	if s.Valid() {
		return string(s)
	}
	return "unknown"
}
