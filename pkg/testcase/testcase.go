// Package testcase defines the authored test-case document, its YAML
// store, and schema validation for hand-edited files.
package testcase

import (
	"time"

	"github.com/google/uuid"
)

// Step is one authored action within a test case. Action is natural
// language ("打开页面", "点击登录按钮"); Data carries the associated value
// (a URL, input text) when the action needs one.
type Step struct {
	Action string `yaml:"action" json:"action" jsonschema:"required"`
	Data   string `yaml:"data,omitempty" json:"data,omitempty"`
}

// TestCase is a named, user-authored template of steps and expected
// results. It is a definition, not an execution: running one produces a
// result.TestResult.
type TestCase struct {
	ID              string   `yaml:"id" json:"id" jsonschema:"required"`
	Name            string   `yaml:"name" json:"name" jsonschema:"required"`
	Description     string   `yaml:"description,omitempty" json:"description,omitempty"`
	Steps           []Step   `yaml:"steps,omitempty" json:"steps,omitempty"`
	ExpectedResults []string `yaml:"expected_results,omitempty" json:"expected_results,omitempty"`
	Tags            []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Priority        string   `yaml:"priority,omitempty" json:"priority,omitempty" jsonschema:"enum=low,enum=medium,enum=high,enum=critical"`
	TestType        string   `yaml:"test_type,omitempty" json:"test_type,omitempty" jsonschema:"enum=functional,enum=ui,enum=api,enum=performance"`
	CreatedAt       string   `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt       string   `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
	Status          string   `yaml:"status,omitempty" json:"status,omitempty" jsonschema:"enum=draft,enum=active,enum=deprecated"`
}

// New creates a test case with a fresh id and the default lifecycle
// fields filled in.
func New(name, description string) *TestCase {
	now := time.Now().Format(time.RFC3339)
	return &TestCase{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Priority:    "medium",
		TestType:    "functional",
		CreatedAt:   now,
		UpdatedAt:   now,
		Status:      "draft",
	}
}

// HasTag reports whether the case carries the given tag.
func (tc *TestCase) HasTag(tag string) bool {
	for _, t := range tc.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Touch updates the modification timestamp.
func (tc *TestCase) Touch() {
	tc.UpdatedAt = time.Now().Format(time.RFC3339)
}
