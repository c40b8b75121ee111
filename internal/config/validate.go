package config

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

var settingsSchema = gojsonschema.NewStringLoader(schemaJSON)

// ValidateSettings checks raw settings read from the config file against the
// embedded schema. Problems are reported as "field: description", sorted.
func ValidateSettings(settings map[string]any) error {
	result, err := gojsonschema.Validate(settingsSchema, gojsonschema.NewGoLoader(settings))
	if err != nil {
		return fmt.Errorf("check config against schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, re.Field()+": "+re.Description())
	}
	sort.Strings(problems)
	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}
