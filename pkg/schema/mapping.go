package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Mapping is a field holding string keyed values. Keys are described by the
// keys field and values by the values field.
type Mapping struct {
	base
	keys   Field
	values Field
}

func NewMapping(options ...Option) (*Mapping, error) {
	return newMapping(collect(options))
}

func newMapping(p Params) (*Mapping, error) {
	m := &Mapping{keys: p.Keys, values: p.Values}
	if err := m.init(m, KindMapping, kindDefaults{typ: "object"}, p); err != nil {
		return nil, err
	}
	err := claimNested(m,
		nestedSlot{field: m.keys, role: RoleMapKey},
		nestedSlot{field: m.values, role: RoleMapValue},
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mapping) Keys() Field {
	return m.keys
}

func (m *Mapping) Values() Field {
	return m.values
}

// CopyParameters clones the key and value fields, or adopts replacements
// passed with WithKeys and WithValues.
func (m *Mapping) CopyParameters(overrides Params) (Params, error) {
	keys, keysParams := overrides.Keys, overrides.KeysParams
	values, valuesParams := overrides.Values, overrides.ValuesParams
	overrides.Keys, overrides.KeysParams = nil, nil
	overrides.Values, overrides.ValuesParams = nil, nil

	p, err := m.base.CopyParameters(overrides)
	if err != nil {
		return Params{}, err
	}
	if p.Keys, err = reproduce(m.keys, keys, keysParams); err != nil {
		return Params{}, err
	}
	if p.Values, err = reproduce(m.values, values, valuesParams); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (m *Mapping) ValueIsBlank(value any) bool {
	if value == nil {
		return true
	}
	record, err := asRecord(value)
	return err == nil && len(record) == 0
}

func (m *Mapping) Normalize(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	return m.transform(value, Field.Normalize, Field.Normalize)
}

// FromJSON parses every key with the keys field and every value with the
// values field. Parsed keys must remain strings.
func (m *Mapping) FromJSON(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	return m.transform(raw, Field.FromJSON, Field.FromJSON)
}

func (m *Mapping) ToJSON(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	return m.transform(value, Field.ToJSON, Field.ToJSON)
}

func (m *Mapping) transform(value any, keyFn, valueFn func(Field, any) (any, error)) (map[string]any, error) {
	record, err := asRecord(value)
	if err != nil {
		return nil, parseError(m, value, "%v", err)
	}
	out := make(map[string]any, len(record))
	for key, item := range record {
		if m.keys != nil {
			parsed, err := keyFn(m.keys, key)
			if err != nil {
				return nil, err
			}
			text, ok := parsed.(string)
			if !ok {
				text = fmt.Sprint(parsed)
			}
			key = text
		}
		if m.values != nil {
			if item, err = valueFn(m.values, item); err != nil {
				return nil, err
			}
		}
		out[key] = item
	}
	return out, nil
}

// ValueLabel renders "key: value" pairs sorted by key.
func (m *Mapping) ValueLabel(value any, options LabelOptions) string {
	if m.ValueIsBlank(value) {
		return m.nullLabel
	}
	record, err := asRecord(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	keys := sortedKeys(record)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		keyLabel := key
		if m.keys != nil {
			keyLabel = m.keys.ValueLabel(key, options)
		}
		valueLabel := fmt.Sprint(record[key])
		if m.values != nil {
			valueLabel = m.values.ValueLabel(record[key], options)
		}
		parts = append(parts, keyLabel+": "+valueLabel)
	}
	return strings.Join(parts, ", ")
}

func (m *Mapping) SearchableText(value any) string {
	record, err := asRecord(value)
	if err != nil || len(record) == 0 {
		return ""
	}
	var parts []string
	for _, key := range sortedKeys(record) {
		if m.keys != nil {
			if text := m.keys.SearchableText(key); text != "" {
				parts = append(parts, text)
			}
		}
		if m.values != nil {
			if text := m.values.SearchableText(record[key]); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

func sortedKeys(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
