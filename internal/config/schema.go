package config

import (
	"encoding/json"
	"fmt"
	"strings"

	eserrors "github.com/systmms/envstore/internal/errors"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// configSchema validates envstore.yaml shape before unmarshalling into the
// typed Definition, so typos in field names fail loudly instead of being
// silently dropped.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "backends"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": "integer", "enum": [1]},
    "default_backend": {"type": "string", "minLength": 1},
    "backends": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "required": ["type"],
        "additionalProperties": false,
        "properties": {
          "type": {"type": "string", "enum": ["aws.ssm", "aws.secretsmanager"]},
          "region": {"type": "string"},
          "profile": {"type": "string"},
          "assume_role": {"type": "string"},
          "endpoint": {"type": "string"},
          "access_key_id": {"type": "string"},
          "secret_access_key": {"type": "string"},
          "group": {"type": "string"},
          "with_decryption": {"type": "boolean"},
          "kms_key_id": {"type": "string"},
          "force_delete": {"type": "boolean"}
        }
      }
    }
  }
}`

// validateSchema checks raw YAML config bytes against the JSON schema.
func validateSchema(data []byte) error {
	// gojsonschema speaks JSON, so round-trip the YAML document first.
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return eserrors.ConfigError{
			Field:      "config",
			Message:    fmt.Sprintf("invalid YAML: %v", err),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert config to JSON for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(jsonDoc),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return eserrors.ConfigError{
			Field:      "config",
			Message:    "configuration does not match the expected format:\n    " + strings.Join(problems, "\n    "),
			Suggestion: "Compare your envstore.yaml against 'envstore init' output",
		}
	}
	return nil
}
