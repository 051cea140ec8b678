package testcase

import (
	"encoding/json"
	"fmt"
	"strings"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidationError is one validation finding with location context.
type ValidationError struct {
	Phase   string `json:"phase"` // structural, semantic, domain
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Path, e.Message)
}

// ValidateFile runs the full validation pipeline on a test case file:
// strict YAML decode, JSON Schema validation against the generated
// schema, then domain rules.
func ValidateFile(path string) (*TestCase, []*ValidationError) {
	tc, err := LoadFile(path)
	if err != nil {
		return nil, []*ValidationError{{Phase: "structural", Message: err.Error()}}
	}

	return tc, Validate(tc)
}

// Validate runs the schema and domain phases on an in-memory test case.
func Validate(tc *TestCase) []*ValidationError {
	var errs []*ValidationError
	errs = append(errs, validateSemantic(tc)...)
	errs = append(errs, validateDomain(tc)...)
	return errs
}

// validateSemantic checks the document against the JSON Schema generated
// from the TestCase struct.
func validateSemantic(tc *TestCase) []*ValidationError {
	fail := func(msg string) []*ValidationError {
		return []*ValidationError{{Phase: "semantic", Message: msg}}
	}

	data, err := json.Marshal(tc)
	if err != nil {
		return fail(fmt.Sprintf("marshal for schema validation: %v", err))
	}
	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return fail(fmt.Sprintf("generate schema: %v", err))
	}

	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return fail(fmt.Sprintf("unmarshal schema: %v", err))
	}
	c := sjsonschema.NewCompiler()
	if err := c.AddResource("testcase-v0.json", schemaDoc); err != nil {
		return fail(fmt.Sprintf("add schema resource: %v", err))
	}
	sch, err := c.Compile("testcase-v0.json")
	if err != nil {
		return fail(fmt.Sprintf("compile schema: %v", err))
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fail(fmt.Sprintf("unmarshal document: %v", err))
	}

	if err := sch.Validate(doc); err != nil {
		var errs []*ValidationError
		if ve, ok := err.(*sjsonschema.ValidationError); ok {
			for _, cause := range flattenValidationErrors(ve) {
				errs = append(errs, &ValidationError{
					Phase:   "semantic",
					Path:    strings.Join(cause.InstanceLocation, "/"),
					Message: cause.Error(),
				})
			}
			return errs
		}
		return fail(err.Error())
	}
	return nil
}

func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var out []*sjsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, flattenValidationErrors(c)...)
	}
	return out
}

// validateDomain applies rules the schema cannot express.
func validateDomain(tc *TestCase) []*ValidationError {
	var errs []*ValidationError
	if strings.TrimSpace(tc.Name) == "" {
		errs = append(errs, &ValidationError{Phase: "domain", Path: "name", Message: "name must not be blank"})
	}
	for i, step := range tc.Steps {
		if strings.TrimSpace(step.Action) == "" {
			errs = append(errs, &ValidationError{
				Phase:   "domain",
				Path:    fmt.Sprintf("steps[%d].action", i),
				Message: "step action must not be blank",
			})
		}
	}
	return errs
}
