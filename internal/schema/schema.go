// Package schema derives Anthropic tool input schemas from Go struct types.
package schema

import (
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// Generate produces an anthropic.ToolInputSchemaParam from the struct type
// T, using its json and jsonschema struct tags.
func Generate[T any]() anthropic.ToolInputSchemaParam {
	var zero T
	root := resolveRoot(jsonschema.Reflect(&zero))

	return anthropic.ToolInputSchemaParam{
		Properties: properties(root),
		Required:   root.Required,
	}
}

// resolveRoot follows the reflector's top-level $ref into $defs, where the
// actual object schema lives.
func resolveRoot(s *jsonschema.Schema) *jsonschema.Schema {
	if s.Ref == "" || s.Definitions == nil {
		return s
	}
	name := s.Ref[strings.LastIndex(s.Ref, "/")+1:]
	if def, ok := s.Definitions[name]; ok {
		return def
	}
	for _, def := range s.Definitions {
		if def.Type == "object" {
			return def
		}
	}
	return s
}

// properties flattens the reflector's ordered property map into the plain
// map[string]any the Anthropic API expects.
func properties(s *jsonschema.Schema) map[string]any {
	if s.Properties == nil {
		return nil
	}
	props := make(map[string]any)
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		props[pair.Key] = property(pair.Value)
	}
	return props
}

func property(s *jsonschema.Schema) map[string]any {
	m := make(map[string]any)

	if s.Type != "" {
		m["type"] = s.Type
	}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if s.Default != nil {
		m["default"] = s.Default
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}

	// Pointer fields reflect as anyOf [T, null]; surface the non-null type.
	for _, sub := range s.AnyOf {
		if sub.Type != "" && sub.Type != "null" {
			m["type"] = sub.Type
			break
		}
	}

	if s.Properties != nil {
		m["type"] = "object"
		m["properties"] = properties(s)
		if len(s.Required) > 0 {
			m["required"] = s.Required
		}
	}

	if s.Items != nil {
		m["items"] = property(s.Items)
	}

	return m
}
