package loader

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelkit/pkg/hints"
	"github.com/goliatone/go-modelkit/pkg/schema"
)

var structuralKeys = map[string]struct{}{
	"kind":           {},
	"fields":         {},
	"groups":         {},
	"extends":        {},
	"items":          {},
	"keys":           {},
	"values":         {},
	"enum":           {},
	"scope":          {},
	"copy":           {},
	"only":           {},
	"allFields":      {},
	"fieldOverrides": {},
}

type builder struct {
	catalog  *Catalog
	registry *hints.Registry
	source   string
}

func (b *builder) topLevel(name string, node map[string]any) (*schema.Schema, error) {
	if _, ok := node["copy"]; ok {
		return b.derived(node)
	}
	if kind, _ := node["kind"].(string); kind != "" && kind != string(schema.KindSchema) && kind != "object" {
		return nil, fmt.Errorf("top level entries must be schemas, got kind %q", kind)
	}
	field, err := b.build(schema.KindSchema, node, name)
	if err != nil {
		return nil, err
	}
	return field.(*schema.Schema), nil
}

// field builds a nested field node. path locates it in errors.
func (b *builder) field(value any, path string) (schema.Field, error) {
	node, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected an object, got %T", path, value)
	}
	rawKind, _ := node["kind"].(string)
	kind, err := schema.ParseKind(rawKind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b.build(kind, node, path)
}

func (b *builder) build(kind schema.Kind, node map[string]any, path string) (schema.Field, error) {
	params, err := schema.ParamsFromMap(plainParams(node), b.registry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	switch kind {
	case schema.KindSchema:
		if err := b.schemaParams(&params, node, path); err != nil {
			return nil, err
		}
	case schema.KindCollection:
		if raw, ok := node["items"]; ok {
			if params.Items, err = b.field(raw, path+".items"); err != nil {
				return nil, err
			}
		}
	case schema.KindMapping:
		if raw, ok := node["keys"]; ok {
			if params.Keys, err = b.field(raw, path+".keys"); err != nil {
				return nil, err
			}
		}
		if raw, ok := node["values"]; ok {
			if params.Values, err = b.field(raw, path+".values"); err != nil {
				return nil, err
			}
		}
	case schema.KindEnum:
		if params.Enum, err = enumEntries(node["enum"], path); err != nil {
			return nil, err
		}
	case schema.KindReference:
		if raw, ok := node["scope"]; ok {
			if params.Scope, err = b.lookup(raw, "scope", path); err != nil {
				return nil, err
			}
		}
	}

	field, err := schema.Build(kind, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return field, nil
}

func (b *builder) schemaParams(params *schema.Params, node map[string]any, path string) error {
	if raw, ok := node["extends"]; ok {
		base, err := b.lookup(raw, "extends", path)
		if err != nil {
			return err
		}
		params.Base = base
	}

	if raw, ok := node["groups"]; ok {
		groups, err := groupList(raw, path)
		if err != nil {
			return err
		}
		params.Groups = groups
	}

	if raw, ok := node["fields"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("%s.fields: expected a list, got %T", path, raw)
		}
		params.Fields = make([]schema.FieldSpec, 0, len(list))
		for index, item := range list {
			child, err := b.field(item, fmt.Sprintf("%s.fields[%d]", path, index))
			if err != nil {
				return err
			}
			params.Fields = append(params.Fields, schema.FieldSpec{Field: child})
		}
	}
	return nil
}

// derived builds a schema as a copy of an earlier one.
func (b *builder) derived(node map[string]any) (*schema.Schema, error) {
	source, err := b.lookup(node["copy"], "copy", "copy")
	if err != nil {
		return nil, err
	}

	params, err := schema.ParamsFromMap(plainParams(node), b.registry)
	if err != nil {
		return nil, err
	}
	options := []schema.Option{schema.WithParams(params)}

	if raw, ok := node["only"]; ok {
		names, err := stringList(raw, "only")
		if err != nil {
			return nil, err
		}
		options = append(options, schema.WithFieldNames(names...))
	}
	if raw, ok := node["allFields"]; ok {
		all, err := b.overrideParams(raw, "allFields")
		if err != nil {
			return nil, err
		}
		options = append(options, schema.WithAllFields(schema.WithParams(all)))
	}
	if raw, ok := node["fieldOverrides"]; ok {
		overrides, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fieldOverrides: expected an object, got %T", raw)
		}
		for name, value := range overrides {
			record, err := b.overrideParams(value, "fieldOverrides."+name)
			if err != nil {
				return nil, err
			}
			options = append(options, schema.WithFieldOverrides(name, schema.WithParams(record)))
		}
	}

	return schema.CopyAs(source, options...)
}

func (b *builder) overrideParams(raw any, path string) (schema.Params, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return schema.Params{}, fmt.Errorf("%s: expected an object, got %T", path, raw)
	}
	params, err := schema.ParamsFromMap(node, b.registry)
	if err != nil {
		return schema.Params{}, fmt.Errorf("%s: %w", path, err)
	}
	params.Registry = nil
	return params, nil
}

func (b *builder) lookup(raw any, key, path string) (*schema.Schema, error) {
	name, ok := raw.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%s.%s: expected a schema name", path, key)
	}
	s, ok := b.catalog.Schema(strings.TrimSpace(name))
	if !ok {
		return nil, fmt.Errorf("%s.%s: schema %q is not declared before this point", path, key, name)
	}
	return s, nil
}

func plainParams(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for key, value := range node {
		if _, structural := structuralKeys[key]; structural {
			continue
		}
		out[key] = value
	}
	return out
}

func groupList(raw any, path string) ([]*schema.Group, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s.groups: expected a list, got %T", path, raw)
	}
	groups := make([]*schema.Group, 0, len(list))
	for index, item := range list {
		switch v := item.(type) {
		case string:
			groups = append(groups, schema.NewGroup(v))
		case map[string]any:
			name, _ := v["name"].(string)
			label, _ := v["label"].(string)
			groups = append(groups, schema.NewGroup(name, schema.GroupLabel(label)))
		default:
			return nil, fmt.Errorf("%s.groups[%d]: expected a name or an object, got %T", path, index, item)
		}
	}
	return groups, nil
}

func enumEntries(raw any, path string) ([]schema.EnumEntry, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s.enum: expected a list, got %T", path, raw)
	}
	entries := make([]schema.EnumEntry, 0, len(list))
	for index, item := range list {
		switch v := item.(type) {
		case string:
			entries = append(entries, schema.EnumEntry{Value: v})
		case map[string]any:
			value, _ := v["value"].(string)
			label, _ := v["label"].(string)
			if value == "" {
				return nil, fmt.Errorf("%s.enum[%d]: entry has no value", path, index)
			}
			entries = append(entries, schema.EnumEntry{Value: value, Label: label})
		default:
			return nil, fmt.Errorf("%s.enum[%d]: expected a string or an object, got %T", path, index, item)
		}
	}
	return entries, nil
}

func stringList(raw any, path string) ([]string, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a list, got %T", path, raw)
	}
	out := make([]string, 0, len(list))
	for index, item := range list {
		text, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected a string, got %T", path, index, item)
		}
		out = append(out, text)
	}
	return out, nil
}
