// Package modelkit is the entry point to the schema, model and import/export
// packages of the module.
package modelkit

import (
	"context"

	"github.com/goliatone/go-modelkit/pkg/jsonschema"
	"github.com/goliatone/go-modelkit/pkg/loader"
	"github.com/goliatone/go-modelkit/pkg/model"
	"github.com/goliatone/go-modelkit/pkg/openapi"
	"github.com/goliatone/go-modelkit/pkg/schema"
)

// Field aliases schema.Field.
type Field = schema.Field

// Schema aliases schema.Schema.
type Schema = schema.Schema

// Catalog aliases loader.Catalog.
type Catalog = loader.Catalog

// Class aliases model.Class.
type Class = model.Class

// Instance aliases model.Instance.
type Instance = model.Instance

// LoadDefinitions reads a JSON or YAML definition file.
func LoadDefinitions(path string, options ...loader.Option) (*Catalog, error) {
	return loader.LoadFile(path, options...)
}

// ImportOpenAPI reads the component schemas of an OpenAPI 3 document.
func ImportOpenAPI(ctx context.Context, path string, options ...openapi.Option) (map[string]*Schema, error) {
	return openapi.ImportFile(ctx, path, options...)
}

// Derive copies s keeping only the named own fields, or every member when no
// name is given.
func Derive(s *Schema, names ...string) (*Schema, error) {
	if len(names) == 0 {
		return schema.CopyAs(s)
	}
	return schema.CopyAs(s, schema.WithFieldNames(names...))
}

// ClassOf binds a class to a loaded or imported schema.
func ClassOf(s *Schema) *Class {
	return model.Bind(s)
}

// JSONSchema renders s as an indented JSON Schema document.
func JSONSchema(s *Schema, options ...jsonschema.Option) ([]byte, error) {
	return jsonschema.Marshal(s, options...)
}
