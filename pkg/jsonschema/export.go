// Package jsonschema renders schemas as JSON Schema (draft 2020-12)
// documents.
package jsonschema

import (
	"encoding/json"

	js "github.com/invopop/jsonschema"

	"github.com/goliatone/go-modelkit/pkg/schema"
)

type exporter struct {
	id       string
	closed   bool
	defaults bool
}

// Option configures Export.
type Option func(*exporter)

// WithID sets the $id of the root document.
func WithID(id string) Option {
	return func(e *exporter) {
		e.id = id
	}
}

// WithClosedObjects forbids properties that are not declared on a schema.
func WithClosedObjects() Option {
	return func(e *exporter) {
		e.closed = true
	}
}

// WithDefaults emits static default values. Computed defaults are never
// exported.
func WithDefaults() Option {
	return func(e *exporter) {
		e.defaults = true
	}
}

// Export converts s into a JSON Schema document. Nested schemas are inlined.
func Export(s *schema.Schema, options ...Option) *js.Schema {
	e := &exporter{}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	root := e.convert(s)
	root.Version = js.Version
	root.ID = js.ID(e.id)
	return root
}

// Marshal exports s as indented JSON.
func Marshal(s *schema.Schema, options ...Option) ([]byte, error) {
	return json.MarshalIndent(Export(s, options...), "", "  ")
}

func (e *exporter) convert(field schema.Field) *js.Schema {
	out := &js.Schema{
		Title:       field.DisplayLabel(),
		Description: field.Description(),
	}
	if e.defaults {
		out.Default = staticDefault(field)
	}

	switch f := field.(type) {
	case *schema.Schema:
		out.Type = "object"
		out.Properties = js.NewProperties()
		for member := range f.Members() {
			out.Properties.Set(member.Name(), e.convert(member))
			if member.Required() {
				out.Required = append(out.Required, member.Name())
			}
		}
		if e.closed {
			out.AdditionalProperties = js.FalseSchema
		}
	case *schema.Collection:
		out.Type = "array"
		if items := f.Items(); items != nil {
			out.Items = e.convert(items)
		}
		if lower, ok := f.MinItems(); ok {
			out.MinItems = uint64Ptr(lower)
		}
		if upper, ok := f.MaxItems(); ok {
			out.MaxItems = uint64Ptr(upper)
		}
	case *schema.Mapping:
		out.Type = "object"
		if values := f.Values(); values != nil {
			out.AdditionalProperties = e.convert(values)
		}
		if keys, ok := f.Keys().(*schema.Enum); ok {
			out.PropertyNames = &js.Schema{Enum: enumValues(keys)}
		}
	case *schema.Enum:
		out.Type = "string"
		out.Enum = enumValues(f)
	case *schema.Text, *schema.Reference:
		out.Type = "string"
	case *schema.Integer:
		out.Type = "integer"
	case *schema.Float:
		out.Type = "number"
	case *schema.Boolean:
		out.Type = "boolean"
	case *schema.Date:
		out.Type = "string"
		out.Format = "date"
	case *schema.DateTime:
		out.Type = "string"
		out.Format = "date-time"
	case *schema.UUID:
		out.Type = "string"
		out.Format = "uuid"
	}
	return out
}

func enumValues(f *schema.Enum) []any {
	values := f.Values()
	out := make([]any, 0, len(values))
	for _, value := range values {
		out = append(out, value)
	}
	return out
}

func staticDefault(field schema.Field) any {
	value := field.DefaultValue()
	switch value.(type) {
	case nil, schema.DefaultFunc, func(any) any, func() any:
		return nil
	}
	encoded, err := field.ToJSON(value)
	if err != nil {
		return nil
	}
	return encoded
}

func uint64Ptr(v int) *uint64 {
	u := uint64(v)
	return &u
}
