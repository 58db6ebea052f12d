package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultSchemaPath locates the machine report schema. CISCAN_SCHEMA_PATH
// overrides the repo-relative default, mainly for tests.
func DefaultSchemaPath() string {
	if path := os.Getenv("CISCAN_SCHEMA_PATH"); path != "" {
		return path
	}
	return filepath.Join("schemas", "report.schema.json")
}

// CompileSchema loads and compiles the machine report schema.
func CompileSchema(path string) (*jsonschema.Schema, error) {
	abspath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema path: %w", err)
	}
	schema, err := jsonschema.Compile("file://" + abspath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile report schema: %w", err)
	}
	return schema, nil
}

// Validate checks a rendered machine artifact against the report schema.
func Validate(data []byte, schemaPath string) error {
	schema, err := CompileSchema(schemaPath)
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("report is not valid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("report does not match schema: %w", err)
	}
	return nil
}
