package appconfig

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// ErrSchema marks a configuration document that does not match the schema.
var ErrSchema = errors.New("configuration does not match schema")

// ValidateFile checks the JSON configuration file at path against the schema.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := ValidateDocument(data); err != nil {
		return fmt.Errorf("config file %q: %w", path, err)
	}
	return nil
}

// ValidateDocument checks a JSON configuration document against the schema and
// lists every violation.
func ValidateDocument(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(problems, "; "))
}
