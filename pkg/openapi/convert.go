package openapi

import (
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelkit/pkg/schema"
)

const (
	extensionPrefix = "x-modelkit-"
	groupExtension  = extensionPrefix + "group"
)

// converter walks one component. visiting holds the object and array schemas
// on the current path, keyed to the location they were entered from.
type converter struct {
	importer *Importer
	visiting map[*openapi3.Schema]string
}

func (c *converter) enter(ref *openapi3.SchemaRef, path string) error {
	if first, ok := c.visiting[ref.Value]; ok {
		return fmt.Errorf("%w: %s refers back to %s", ErrRecursiveReference, path, first)
	}
	c.visiting[ref.Value] = path
	return nil
}

func (c *converter) leave(ref *openapi3.SchemaRef) {
	delete(c.visiting, ref.Value)
}

func (c *converter) object(name string, ref *openapi3.SchemaRef, required bool, path string) (*schema.Schema, error) {
	if err := c.enter(ref, path); err != nil {
		return nil, err
	}
	defer c.leave(ref)

	params, err := c.params(name, ref.Value, required, path)
	if err != nil {
		return nil, err
	}

	src := ref.Value
	names := make([]string, 0, len(src.Properties))
	for property := range src.Properties {
		names = append(names, property)
	}
	slices.Sort(names)

	var groups []string
	for _, property := range names {
		child := src.Properties[property]
		field, err := c.field(property, child, slices.Contains(src.Required, property), path+"/properties/"+property)
		if err != nil {
			return nil, err
		}
		if group := field.GroupName(); group != "" && !slices.Contains(groups, group) {
			groups = append(groups, group)
		}
		params.Fields = append(params.Fields, schema.FieldSpec{Field: field})
	}
	for _, group := range groups {
		params.Groups = append(params.Groups, schema.NewGroup(group))
	}

	built, err := schema.Build(schema.KindSchema, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return built.(*schema.Schema), nil
}

func (c *converter) field(name string, ref *openapi3.SchemaRef, required bool, path string) (schema.Field, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%s: unresolved schema", path)
	}
	if ref.Ref != "" {
		path = ref.Ref
	}
	src := ref.Value

	if isObject(src) {
		if len(src.Properties) == 0 && src.AdditionalProperties.Schema != nil {
			return c.mapping(name, ref, required, path)
		}
		return wrapSchema(c.object(name, ref, required, path))
	}

	params, err := c.params(name, src, required, path)
	if err != nil {
		return nil, err
	}
	kind := leafKind(src)

	switch kind {
	case schema.KindEnum:
		for _, value := range src.Enum {
			params.Enum = append(params.Enum, schema.EnumEntry{Value: fmt.Sprint(value)})
		}
	case schema.KindCollection:
		if err := c.enter(ref, path); err != nil {
			return nil, err
		}
		defer c.leave(ref)
		if src.Items != nil {
			if params.Items, err = c.field("", src.Items, false, path+"/items"); err != nil {
				return nil, err
			}
		}
		if src.MinItems > 0 {
			params.MinItems = intPtr(int(src.MinItems))
		}
		if src.MaxItems != nil {
			params.MaxItems = intPtr(int(*src.MaxItems))
		}
	}

	built, err := schema.Build(kind, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return built, nil
}

func (c *converter) mapping(name string, ref *openapi3.SchemaRef, required bool, path string) (schema.Field, error) {
	if err := c.enter(ref, path); err != nil {
		return nil, err
	}
	defer c.leave(ref)

	params, err := c.params(name, ref.Value, required, path)
	if err != nil {
		return nil, err
	}
	if params.Keys, err = schema.New(schema.KindText); err != nil {
		return nil, err
	}
	if params.Values, err = c.field("", ref.Value.AdditionalProperties.Schema, false, path+"/additionalProperties"); err != nil {
		return nil, err
	}
	built, err := schema.Build(schema.KindMapping, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return built, nil
}

// params maps the attributes shared by every kind.
func (c *converter) params(name string, src *openapi3.Schema, required bool, path string) (schema.Params, error) {
	params := schema.Params{Registry: c.importer.registry}
	if name != "" {
		params.Name = &name
	}
	if src.Title != "" {
		params.Label = &src.Title
	}
	if src.Description != "" {
		params.Description = &src.Description
	}
	if required {
		params.Required = &required
	}
	if src.Default != nil {
		params.Default = src.Default
		params.HasDefault = true
	}

	extensions := collectExtensions(src)
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		value := extensions[key]
		if key == groupExtension {
			group, ok := value.(string)
			if !ok {
				return schema.Params{}, fmt.Errorf("%s: %s must be a string, got %T", path, key, value)
			}
			params.Group = &group
			continue
		}
		hint, err := c.importer.registry.Lookup(strings.TrimPrefix(key, extensionPrefix))
		if err != nil {
			if c.importer.strict {
				return schema.Params{}, fmt.Errorf("%s: %w", path, err)
			}
			c.importer.logger.Warn().Str("path", path).Str("extension", key).Msg("skipping unknown hint")
			continue
		}
		params.Hints = append(params.Hints, schema.HintValue{Hint: hint, Value: value})
	}
	return params, nil
}

// collectExtensions gathers x-modelkit-* extensions of src and its allOf
// members. The outer schema wins.
func collectExtensions(src *openapi3.Schema) map[string]any {
	out := make(map[string]any)
	var walk func(*openapi3.Schema)
	walk = func(s *openapi3.Schema) {
		for _, member := range s.AllOf {
			if member != nil && member.Value != nil {
				walk(member.Value)
			}
		}
		for key, value := range s.Extensions {
			if strings.HasPrefix(key, extensionPrefix) {
				out[key] = value
			}
		}
	}
	walk(src)
	return out
}

func leafKind(src *openapi3.Schema) schema.Kind {
	if len(src.Enum) > 0 {
		return schema.KindEnum
	}
	switch firstSchemaType(src.Type) {
	case openapi3.TypeString:
		switch src.Format {
		case "date":
			return schema.KindDate
		case "date-time":
			return schema.KindDateTime
		case "uuid":
			return schema.KindUUID
		}
		return schema.KindText
	case openapi3.TypeInteger:
		return schema.KindInteger
	case openapi3.TypeNumber:
		return schema.KindFloat
	case openapi3.TypeBoolean:
		return schema.KindBoolean
	case openapi3.TypeArray:
		return schema.KindCollection
	}
	return schema.KindBasic
}

func isObject(src *openapi3.Schema) bool {
	switch firstSchemaType(src.Type) {
	case openapi3.TypeObject:
		return true
	case "":
		return len(src.Properties) > 0
	}
	return false
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func intPtr(v int) *int { return &v }

func wrapSchema(s *schema.Schema, err error) (schema.Field, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
