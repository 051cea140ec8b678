package testcase

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateJSONSchema produces a JSON Schema Draft 2020-12 document from
// the TestCase struct, for editor tooling and semantic validation.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&TestCase{})
	s.ID = "https://github.com/ormasoftchile/webprobe/schemas/testcase-v0.json"
	s.Title = "Webprobe Test Case v0"
	s.Description = "Schema for webprobe test case YAML documents"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
