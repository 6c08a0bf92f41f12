package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-modelkit/pkg/hints"
)

// HintValue pairs a hint with the value to assign.
type HintValue struct {
	Hint  *hints.Hint
	Value any
}

// FieldSpec names a field to reproduce in a schema copy. Exactly one of Name
// (a field declared on the source schema) or Field (a pre-built field) is
// expected.
type FieldSpec struct {
	Name  string
	Field Field
}

// EnumEntry is one allowed value of an Enum field.
type EnumEntry struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Params is the parameter record every kind is built from. Pointer fields
// distinguish "unset" from the zero value so that records can be merged.
type Params struct {
	Registry *hints.Registry

	Name        *string
	Label       *string
	Description *string
	Type        *string
	Required    *bool
	Searchable  *bool
	Default     any
	HasDefault  bool
	Group       *string
	DataPath    *string
	NullLabel   *string
	Hints       []HintValue

	// Schema.
	Base      *Schema
	Groups    []*Group
	Fields    []FieldSpec
	AllFields *Params
	PerField  map[string]*Params

	// Collection.
	Items       Field
	ItemsParams *Params
	MinItems    *int
	MaxItems    *int

	// Mapping.
	Keys         Field
	KeysParams   *Params
	Values       Field
	ValuesParams *Params

	// Leaf kinds.
	Format *string
	Enum   []EnumEntry
	Scope  *Schema
}

// IsZero reports whether the record carries no parameter at all.
func (p Params) IsZero() bool {
	return p.Registry == nil &&
		p.Name == nil && p.Label == nil && p.Description == nil && p.Type == nil &&
		p.Required == nil && p.Searchable == nil && !p.HasDefault && p.Group == nil &&
		p.DataPath == nil && p.NullLabel == nil && len(p.Hints) == 0 &&
		p.Base == nil && p.Groups == nil && p.Fields == nil && p.AllFields == nil && p.PerField == nil &&
		p.Items == nil && p.ItemsParams == nil && p.MinItems == nil && p.MaxItems == nil &&
		p.Keys == nil && p.KeysParams == nil && p.Values == nil && p.ValuesParams == nil &&
		p.Format == nil && p.Enum == nil && p.Scope == nil
}

// Merge returns p with every parameter set in override applied on top.
// Hints are merged per hint; slices and maps are replaced as a whole.
func (p Params) Merge(override Params) Params {
	out := p
	if override.Registry != nil {
		out.Registry = override.Registry
	}
	mergePtr(&out.Name, override.Name)
	mergePtr(&out.Label, override.Label)
	mergePtr(&out.Description, override.Description)
	mergePtr(&out.Type, override.Type)
	mergePtr(&out.Required, override.Required)
	mergePtr(&out.Searchable, override.Searchable)
	mergePtr(&out.Group, override.Group)
	mergePtr(&out.DataPath, override.DataPath)
	mergePtr(&out.NullLabel, override.NullLabel)
	mergePtr(&out.MinItems, override.MinItems)
	mergePtr(&out.MaxItems, override.MaxItems)
	mergePtr(&out.Format, override.Format)
	if override.HasDefault {
		out.Default = override.Default
		out.HasDefault = true
	}
	if len(override.Hints) > 0 {
		out.Hints = mergeHints(p.Hints, override.Hints)
	}

	if override.Base != nil {
		out.Base = override.Base
	}
	if override.Groups != nil {
		out.Groups = override.Groups
	}
	if override.Fields != nil {
		out.Fields = override.Fields
	}
	if override.AllFields != nil {
		out.AllFields = override.AllFields
	}
	if override.PerField != nil {
		out.PerField = override.PerField
	}
	if override.Items != nil {
		out.Items = override.Items
	}
	if override.ItemsParams != nil {
		out.ItemsParams = override.ItemsParams
	}
	if override.Keys != nil {
		out.Keys = override.Keys
	}
	if override.KeysParams != nil {
		out.KeysParams = override.KeysParams
	}
	if override.Values != nil {
		out.Values = override.Values
	}
	if override.ValuesParams != nil {
		out.ValuesParams = override.ValuesParams
	}
	if override.Enum != nil {
		out.Enum = override.Enum
	}
	if override.Scope != nil {
		out.Scope = override.Scope
	}
	return out
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func mergeHints(current, overrides []HintValue) []HintValue {
	out := make([]HintValue, 0, len(current)+len(overrides))
	index := make(map[*hints.Hint]int, len(current)+len(overrides))
	for _, entry := range current {
		index[entry.Hint] = len(out)
		out = append(out, entry)
	}
	for _, entry := range overrides {
		if i, ok := index[entry.Hint]; ok {
			out[i] = entry
			continue
		}
		index[entry.Hint] = len(out)
		out = append(out, entry)
	}
	return out
}

// merged combines optional override records, later records winning. It
// reports false when no record applies.
func merged(records ...*Params) (Params, bool) {
	var out Params
	applied := false
	for _, record := range records {
		if record == nil || record.IsZero() {
			continue
		}
		out = out.Merge(*record)
		applied = true
	}
	return out, applied
}

// ParamsFromMap converts a string keyed record, as found in JSON or YAML
// documents, into Params. Keys that are not recognised parameters are
// resolved as hint names on reg (hints.Default when nil); unknown keys fail
// with *hints.UnknownHintError.
func ParamsFromMap(values map[string]any, reg *hints.Registry) (Params, error) {
	if reg == nil {
		reg = hints.Default
	}
	p := Params{Registry: reg}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values[key]
		var err error
		switch key {
		case "name":
			p.Name, err = stringParam(key, value)
		case "label":
			p.Label, err = stringParam(key, value)
		case "description":
			p.Description, err = stringParam(key, value)
		case "type":
			p.Type, err = stringParam(key, value)
		case "group":
			p.Group, err = stringParam(key, value)
		case "dataPath":
			p.DataPath, err = stringParam(key, value)
		case "nullLabel":
			p.NullLabel, err = stringParam(key, value)
		case "format":
			p.Format, err = stringParam(key, value)
		case "required":
			p.Required, err = boolParam(key, value)
		case "searchable":
			p.Searchable, err = boolParam(key, value)
		case "minItems":
			p.MinItems, err = intParam(key, value)
		case "maxItems":
			p.MaxItems, err = intParam(key, value)
		case "default", "defaultValue":
			p.Default = value
			p.HasDefault = true
		default:
			var hint *hints.Hint
			hint, err = reg.Lookup(key)
			if err == nil {
				p.Hints = append(p.Hints, HintValue{Hint: hint, Value: value})
			}
		}
		if err != nil {
			return Params{}, err
		}
	}
	return p, nil
}

func stringParam(key string, value any) (*string, error) {
	switch v := value.(type) {
	case string:
		return ptr(strings.TrimSpace(v)), nil
	case nil:
		return ptr(""), nil
	default:
		return nil, fmt.Errorf("schema: parameter %q expects a string, got %T", key, value)
	}
}

func boolParam(key string, value any) (*bool, error) {
	v, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("schema: parameter %q expects a boolean, got %T", key, value)
	}
	return ptr(v), nil
}

func intParam(key string, value any) (*int, error) {
	switch v := value.(type) {
	case int:
		return ptr(v), nil
	case int64:
		return ptr(int(v)), nil
	case float64:
		if v != float64(int(v)) {
			return nil, fmt.Errorf("schema: parameter %q expects an integer, got %v", key, v)
		}
		return ptr(int(v)), nil
	case uint64:
		return ptr(int(v)), nil
	default:
		return nil, fmt.Errorf("schema: parameter %q expects an integer, got %T", key, value)
	}
}
