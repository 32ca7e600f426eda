package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrSchemaViolation indicates a config file does not match the schema.
var ErrSchemaViolation = errors.New("config does not match schema")

//go:embed schema.json
var schemaJSON []byte

// Schema returns the JSON schema of the config file.
func Schema() []byte {
	return schemaJSON
}

// ValidateFile checks the YAML config file at path against the schema and
// returns one message per violation. A nil error with no messages means valid.
func ValidateFile(path string) ([]string, error) {
	//nolint:gosec // path is the config file the user asked to validate.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return ValidateBytes(data)
}

// ValidateBytes checks YAML config content against the schema.
func ValidateBytes(data []byte) ([]string, error) {
	var doc any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if doc == nil {
		doc = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		messages = append(messages, resultErr.String())
	}

	return messages, fmt.Errorf("%w: %d violation(s)", ErrSchemaViolation, len(messages))
}
