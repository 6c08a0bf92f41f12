package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/goliatone/go-modelkit/pkg/schema"
)

// Class describes a record type through its schema.
type Class struct {
	schema *schema.Schema
	parent *Class
}

// Define builds a class whose schema is called name.
func Define(name string, options ...schema.Option) (*Class, error) {
	s, err := schema.NewSchema(append(options, schema.WithName(name))...)
	if err != nil {
		return nil, fmt.Errorf("model: define %s: %w", name, err)
	}
	return &Class{schema: s}, nil
}

// Bind wraps an existing schema, e.g. one produced by a loader.
func Bind(s *schema.Schema) *Class {
	class := &Class{schema: s}
	if base := s.Base(); base != nil {
		class.parent = Bind(base)
	}
	return class
}

// Extend defines a subclass whose schema inherits from c's.
func (c *Class) Extend(name string, options ...schema.Option) (*Class, error) {
	s, err := schema.NewSchema(append(options, schema.WithName(name), schema.WithBase(c.schema))...)
	if err != nil {
		return nil, fmt.Errorf("model: extend %s as %s: %w", c.Name(), name, err)
	}
	return &Class{schema: s, parent: c}, nil
}

func (c *Class) Name() string {
	return c.schema.Name()
}

func (c *Class) Schema() *schema.Schema {
	return c.schema
}

// Base returns the class c extends, nil for root classes.
func (c *Class) Base() *Class {
	return c.parent
}

func (c *Class) String() string {
	return c.schema.Name()
}

// Field returns the member called name or an UnknownFieldError.
func (c *Class) Field(name string) (schema.Field, error) {
	field := c.schema.Field(name)
	if field == nil {
		return nil, &UnknownFieldError{Class: c, Name: name}
	}
	return field, nil
}

// New builds an instance and sets each value through Set.
func (c *Class) New(values map[string]any) (*Instance, error) {
	inst := &Instance{class: c, values: make(map[string]any)}
	for _, key := range sortedKeys(values) {
		if err := inst.Set(key, values[key]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FromRecord builds an instance from a decoded JSON object. Each member reads
// its value through ValueFromRecord and parses it with FromJSON; members
// absent from the record are left unset.
func (c *Class) FromRecord(record map[string]any) (*Instance, error) {
	values := make(map[string]any)
	for member := range c.schema.Members() {
		raw, ok := member.ValueFromRecord(record)
		if !ok {
			continue
		}
		parsed, err := member.FromJSON(raw)
		if err != nil {
			return nil, err
		}
		values[member.Name()] = parsed
	}
	return c.New(values)
}

// DecodeJSON builds an instance straight from raw JSON, reading each member
// at its data path without decoding the rest of the document.
func (c *Class) DecodeJSON(data []byte) (*Instance, error) {
	values := make(map[string]any)
	for member := range c.schema.Members() {
		path := member.DataPath()
		if path == "" {
			path = member.Name()
		}
		raw, found, err := readPath(data, strings.Split(path, ".")...)
		if err != nil {
			return nil, fmt.Errorf("model: decode %s of %s: %w", member.Name(), c.Name(), err)
		}
		if !found {
			continue
		}
		parsed, err := member.FromJSON(raw)
		if err != nil {
			return nil, err
		}
		values[member.Name()] = parsed
	}
	return c.New(values)
}

func readPath(data []byte, keys ...string) (any, bool, error) {
	raw, kind, _, err := jsonparser.Get(data, keys...)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	switch kind {
	case jsonparser.Null:
		return nil, true, nil
	case jsonparser.String:
		text, err := jsonparser.ParseString(raw)
		return text, true, err
	case jsonparser.Number:
		number, err := jsonparser.ParseFloat(raw)
		return number, true, err
	case jsonparser.Boolean:
		flag, err := jsonparser.ParseBoolean(raw)
		return flag, true, err
	case jsonparser.Object, jsonparser.Array:
		var out any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, false, err
		}
		return out, true, nil
	}
	return nil, false, fmt.Errorf("unsupported JSON value %q", raw)
}
