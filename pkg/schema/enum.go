package schema

import (
	"slices"
	"strings"

	"github.com/goliatone/go-modelkit/internal/labels"
)

// Enum restricts values to a declared list of entries. Values are the entry
// strings; labels come from the entries.
type Enum struct {
	base
	entries []EnumEntry
}

func NewEnum(options ...Option) (*Enum, error) {
	return newEnum(collect(options))
}

func newEnum(p Params) (*Enum, error) {
	f := &Enum{entries: slices.Clone(p.Enum)}
	if err := f.init(f, KindEnum, kindDefaults{typ: "string"}, p); err != nil {
		return nil, err
	}
	return f, nil
}

// Entries returns a copy of the allowed entries.
func (f *Enum) Entries() []EnumEntry {
	return slices.Clone(f.entries)
}

// Values lists the entry values in declaration order.
func (f *Enum) Values() []string {
	values := make([]string, 0, len(f.entries))
	for _, entry := range f.entries {
		values = append(values, entry.Value)
	}
	return values
}

// Entry returns the entry for value.
func (f *Enum) Entry(value string) (EnumEntry, bool) {
	for _, entry := range f.entries {
		if entry.Value == value {
			return entry, true
		}
	}
	return EnumEntry{}, false
}

func (f *Enum) CopyParameters(overrides Params) (Params, error) {
	p, err := f.base.CopyParameters(overrides)
	if err != nil {
		return Params{}, err
	}
	if p.Enum == nil {
		p.Enum = slices.Clone(f.entries)
	}
	return p, nil
}

func (f *Enum) Normalize(value any) (any, error) {
	return f.FromJSON(value)
}

func (f *Enum) FromJSON(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, nil
		}
		if _, ok := f.Entry(v); !ok {
			return nil, parseError(f, raw, "%q is not one of %s", v, strings.Join(f.Values(), ", "))
		}
		return v, nil
	case EnumEntry:
		return f.FromJSON(v.Value)
	}
	return nil, parseError(f, raw, "expected a string, got %T", raw)
}

func (f *Enum) ToJSON(value any) (any, error) {
	return f.FromJSON(value)
}

// ValueLabel returns the entry label, deriving one from the value when the
// entry has none.
func (f *Enum) ValueLabel(value any, options LabelOptions) string {
	text, ok := value.(string)
	if !ok || text == "" {
		return f.base.ValueLabel(value, options)
	}
	if entry, found := f.Entry(text); found && entry.Label != "" {
		return entry.Label
	}
	return labels.FromName(text)
}
