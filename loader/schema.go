package loader

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// schemaJSON is the embedded JSON Schema for interface definition validation.
var schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://uniffi.dev/schemas/interface-definition/v1",
  "title": "Component Interface Definition",
  "description": "Schema for component interface definition YAML files.",
  "type": "object",
  "required": ["crate_name"],
  "additionalProperties": false,
  "properties": {
    "crate_name": { "type": "string", "pattern": "^[a-z][a-z0-9_]*$" },
    "namespace": { "type": "string", "pattern": "^[a-z][a-z0-9_]*$" },
    "records": {
      "type": "array",
      "items": { "$ref": "#/$defs/record_definition" }
    },
    "enums": {
      "type": "array",
      "items": { "$ref": "#/$defs/enum_definition" }
    },
    "objects": {
      "type": "array",
      "items": { "$ref": "#/$defs/object_definition" }
    },
    "callback_interfaces": {
      "type": "array",
      "items": { "$ref": "#/$defs/callback_definition" }
    },
    "custom_types": {
      "type": "array",
      "items": { "$ref": "#/$defs/custom_definition" }
    },
    "external_types": {
      "type": "array",
      "items": { "$ref": "#/$defs/external_definition" }
    },
    "functions": {
      "type": "array",
      "items": { "$ref": "#/$defs/function_definition" }
    }
  },
  "$defs": {
    "type_name": { "type": "string", "minLength": 1 },
    "record_definition": {
      "type": "object",
      "required": ["name", "fields"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[A-Za-z][A-Za-z0-9_]*$" },
        "description": { "type": "string" },
        "fields": {
          "type": "array",
          "items": { "$ref": "#/$defs/field_definition" },
          "minItems": 1
        }
      }
    },
    "field_definition": {
      "type": "object",
      "required": ["name", "type"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[a-z_][a-z0-9_]*$" },
        "type": { "$ref": "#/$defs/type_name" },
        "description": { "type": "string" }
      }
    },
    "enum_definition": {
      "type": "object",
      "required": ["name", "variants"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[A-Za-z][A-Za-z0-9_]*$" },
        "error": { "type": "boolean" },
        "repr": { "type": "string", "enum": ["u8", "i8", "u16", "i16", "u32", "i32", "u64", "i64"] },
        "description": { "type": "string" },
        "variants": {
          "type": "array",
          "items": { "$ref": "#/$defs/variant_definition" },
          "minItems": 1
        }
      }
    },
    "variant_definition": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[A-Za-z][A-Za-z0-9_]*$" },
        "discr": { "type": "integer" },
        "description": { "type": "string" }
      }
    },
    "function_definition": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[a-z_][a-z0-9_]*$" },
        "args": {
          "type": "array",
          "items": { "$ref": "#/$defs/field_definition" }
        },
        "return": { "$ref": "#/$defs/type_name" },
        "throws": { "$ref": "#/$defs/type_name" },
        "async": { "type": "boolean" },
        "description": { "type": "string" }
      }
    },
    "object_definition": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[A-Za-z][A-Za-z0-9_]*$" },
        "impl": { "type": "string", "enum": ["struct", "trait", "callback_trait"] },
        "description": { "type": "string" },
        "constructors": {
          "type": "array",
          "items": { "$ref": "#/$defs/function_definition" }
        },
        "methods": {
          "type": "array",
          "items": { "$ref": "#/$defs/function_definition" }
        }
      }
    },
    "callback_definition": {
      "type": "object",
      "required": ["name", "methods"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[A-Za-z][A-Za-z0-9_]*$" },
        "description": { "type": "string" },
        "methods": {
          "type": "array",
          "items": { "$ref": "#/$defs/function_definition" },
          "minItems": 1
        }
      }
    },
    "custom_definition": {
      "type": "object",
      "required": ["name", "builtin"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[A-Za-z][A-Za-z0-9_]*$" },
        "builtin": { "$ref": "#/$defs/type_name" }
      }
    },
    "external_definition": {
      "type": "object",
      "required": ["name", "kind", "module_path"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[A-Za-z][A-Za-z0-9_]*$" },
        "kind": { "type": "string", "enum": ["record", "enum", "interface", "callback_interface", "custom"] },
        "module_path": { "type": "string", "minLength": 1 },
        "impl": { "type": "string", "enum": ["struct", "trait", "callback_trait"] },
        "builtin": { "$ref": "#/$defs/type_name" }
      }
    }
  }
}`

var compiledSchema *jsonschema.Schema

func init() {
	var schemaDoc interface{}
	if err := json.Unmarshal([]byte(schemaJSON), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to decode schema JSON: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add schema resource: %v", err))
	}
	var err error
	compiledSchema, err = c.Compile("schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema: %v", err))
	}
}

// SchemaJSON returns the embedded schema text.
func SchemaJSON() string {
	return schemaJSON
}

// ValidateSchema validates raw YAML bytes against the interface definition
// JSON Schema.
func ValidateSchema(yamlData []byte) error {
	var raw interface{}
	if err := yaml.Unmarshal(yamlData, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	converted := convertYAMLToJSON(raw)

	if err := compiledSchema.Validate(converted); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// convertYAMLToJSON converts YAML-parsed values to JSON-compatible types.
// yaml.v3 parses maps as map[string]interface{} which is already
// JSON-compatible, but nested values need converting recursively.
func convertYAMLToJSON(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			result[k] = convertYAMLToJSON(val)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			result[i] = convertYAMLToJSON(val)
		}
		return result
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return v
	}
}
