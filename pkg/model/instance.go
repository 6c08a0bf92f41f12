package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-modelkit/pkg/schema"
	"github.com/goliatone/go-modelkit/pkg/search"
)

// Instance holds the values of one record of a Class.
type Instance struct {
	class  *Class
	values map[string]any
}

func (i *Instance) Class() *Class {
	return i.class
}

func (i *Instance) String() string {
	return i.class.Name() + " instance"
}

// Get returns the value of name. Unset members produce their default once;
// the produced value is kept.
func (i *Instance) Get(name string) (any, error) {
	field, err := i.class.Field(name)
	if err != nil {
		return nil, err
	}
	if value, ok := i.values[name]; ok {
		return value, nil
	}
	value := field.ProduceDefaultValue(i)
	i.values[name] = value
	return value, nil
}

// Set normalizes value through the member's field and stores it.
func (i *Instance) Set(name string, value any) error {
	field, err := i.class.Field(name)
	if err != nil {
		return err
	}
	normalized, err := field.Normalize(value)
	if err != nil {
		return err
	}
	i.values[name] = normalized
	return nil
}

// IsSet reports whether name holds a value, produced default included.
func (i *Instance) IsSet(name string) bool {
	_, ok := i.values[name]
	return ok
}

// Label returns the display label of the value of name.
func (i *Instance) Label(name string) (string, error) {
	field, err := i.class.Field(name)
	if err != nil {
		return "", err
	}
	value, err := i.Get(name)
	if err != nil {
		return "", err
	}
	return field.ValueLabel(value, schema.LabelOptions{}), nil
}

// Copy builds a new instance with the values of i, replaced by values where
// given.
func (i *Instance) Copy(values map[string]any) (*Instance, error) {
	merged := make(map[string]any)
	for member := range i.class.schema.Members() {
		name := member.Name()
		if value, ok := values[name]; ok {
			merged[name] = value
			continue
		}
		value, err := i.Get(name)
		if err != nil {
			return nil, err
		}
		merged[name] = value
	}
	for name, value := range values {
		if _, ok := merged[name]; !ok {
			merged[name] = value
		}
	}
	return i.class.New(merged)
}

// Record returns every member value keyed by name, producing defaults for
// unset members.
func (i *Instance) Record() map[string]any {
	out := make(map[string]any)
	for member := range i.class.schema.Members() {
		value, _ := i.Get(member.Name())
		out[member.Name()] = value
	}
	return out
}

// ToJSON serialises every member with its field.
func (i *Instance) ToJSON() (map[string]any, error) {
	out := make(map[string]any)
	for member := range i.class.schema.Members() {
		value, err := i.Get(member.Name())
		if err != nil {
			return nil, err
		}
		serialised, err := member.ToJSON(value)
		if err != nil {
			return nil, err
		}
		out[member.Name()] = serialised
	}
	return out, nil
}

func (i *Instance) MarshalJSON() ([]byte, error) {
	data, err := i.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("model: marshal %s: %w", i, err)
	}
	return json.Marshal(data)
}

// SearchableText joins the searchable text of every searchable member.
func (i *Instance) SearchableText() string {
	var chunks []string
	for member := range i.class.schema.Members() {
		if !member.Searchable() {
			continue
		}
		value, _ := i.Get(member.Name())
		if text := member.SearchableText(value); text != "" {
			chunks = append(chunks, text)
		}
	}
	return strings.Join(chunks, " ")
}

// Matches reports whether the searchable text contains every token of query.
func (i *Instance) Matches(query string, options ...search.Option) bool {
	return search.Prepare(query, options...)(i.SearchableText())
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
