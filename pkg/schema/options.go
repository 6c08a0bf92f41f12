package schema

import (
	"github.com/goliatone/go-modelkit/pkg/hints"
)

// Option configures the Params a field is built or copied from.
type Option func(*Params)

func collect(options []Option) Params {
	var p Params
	for _, opt := range options {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

// Options folds options into a Params record.
func Options(options ...Option) Params {
	return collect(options)
}

// WithParams merges a prepared record into the one being built.
func WithParams(params Params) Option {
	return func(p *Params) {
		*p = p.Merge(params)
	}
}

// WithRegistry selects the hint registry used to apply hints. Fields use
// hints.Default otherwise.
func WithRegistry(reg *hints.Registry) Option {
	return func(p *Params) {
		p.Registry = reg
	}
}

func WithName(name string) Option {
	return func(p *Params) {
		p.Name = ptr(name)
	}
}

func WithLabel(label string) Option {
	return func(p *Params) {
		p.Label = ptr(label)
	}
}

func WithDescription(description string) Option {
	return func(p *Params) {
		p.Description = ptr(description)
	}
}

// WithType overrides the declared type tag of the field.
func WithType(typ string) Option {
	return func(p *Params) {
		p.Type = ptr(typ)
	}
}

func WithRequired(required bool) Option {
	return func(p *Params) {
		p.Required = ptr(required)
	}
}

func WithSearchable(searchable bool) Option {
	return func(p *Params) {
		p.Searchable = ptr(searchable)
	}
}

// WithDefault sets a literal default value, or a producer (DefaultFunc,
// func(any) any or func() any) called by ProduceDefaultValue.
func WithDefault(value any) Option {
	return func(p *Params) {
		p.Default = value
		p.HasDefault = true
	}
}

// WithDefaultFunc sets a producer invoked with the carrier asking for a
// default.
func WithDefaultFunc(fn DefaultFunc) Option {
	return WithDefault(fn)
}

// WithGroup names the group the field joins when added to a schema that
// declares groups.
func WithGroup(name string) Option {
	return func(p *Params) {
		p.Group = ptr(name)
	}
}

// WithDataPath reads the value from a dotted path of a record instead of the
// field name.
func WithDataPath(path string) Option {
	return func(p *Params) {
		p.DataPath = ptr(path)
	}
}

func WithNullLabel(label string) Option {
	return func(p *Params) {
		p.NullLabel = ptr(label)
	}
}

// WithHint assigns a declared hint.
func WithHint(h *hints.Hint, value any) Option {
	return func(p *Params) {
		p.Hints = mergeHints(p.Hints, []HintValue{{Hint: h, Value: value}})
	}
}

// WithBase makes the schema inherit from base.
func WithBase(base *Schema) Option {
	return func(p *Params) {
		p.Base = base
	}
}

func WithGroups(groups ...*Group) Option {
	return func(p *Params) {
		p.Groups = append(p.Groups, groups...)
	}
}

// WithFields adds pre-built fields. On a copy they are reused as-is unless
// already owned or targeted by an override.
func WithFields(fields ...Field) Option {
	return func(p *Params) {
		if p.Fields == nil {
			p.Fields = []FieldSpec{}
		}
		for _, f := range fields {
			p.Fields = append(p.Fields, FieldSpec{Field: f})
		}
	}
}

// WithFieldNames restricts a schema copy to the named fields declared on the
// source schema.
func WithFieldNames(names ...string) Option {
	return func(p *Params) {
		if p.Fields == nil {
			p.Fields = []FieldSpec{}
		}
		for _, name := range names {
			p.Fields = append(p.Fields, FieldSpec{Name: name})
		}
	}
}

func WithFieldSpecs(specs ...FieldSpec) Option {
	return func(p *Params) {
		if p.Fields == nil {
			p.Fields = []FieldSpec{}
		}
		p.Fields = append(p.Fields, specs...)
	}
}

// WithAllFields applies options to every field reproduced by a schema copy.
func WithAllFields(options ...Option) Option {
	return func(p *Params) {
		record := collect(options)
		if p.AllFields != nil {
			record = p.AllFields.Merge(record)
		}
		p.AllFields = &record
	}
}

// WithFieldOverrides applies options to the field called name when a schema
// copy reproduces it. They win over WithAllFields.
func WithFieldOverrides(name string, options ...Option) Option {
	return func(p *Params) {
		record := collect(options)
		next := make(map[string]*Params, len(p.PerField)+1)
		for key, value := range p.PerField {
			next[key] = value
		}
		if current, ok := next[name]; ok && current != nil {
			record = current.Merge(record)
		}
		next[name] = &record
		p.PerField = next
	}
}

// WithItems sets the item field of a collection.
func WithItems(items Field) Option {
	return func(p *Params) {
		p.Items = items
	}
}

// WithItemsOptions customises the clone of the item field on copy.
func WithItemsOptions(options ...Option) Option {
	return func(p *Params) {
		p.ItemsParams = nestedParams(p.ItemsParams, options)
	}
}

func WithMinItems(n int) Option {
	return func(p *Params) {
		p.MinItems = ptr(n)
	}
}

func WithMaxItems(n int) Option {
	return func(p *Params) {
		p.MaxItems = ptr(n)
	}
}

// WithKeys sets the key field of a mapping.
func WithKeys(keys Field) Option {
	return func(p *Params) {
		p.Keys = keys
	}
}

// WithValues sets the value field of a mapping.
func WithValues(values Field) Option {
	return func(p *Params) {
		p.Values = values
	}
}

func WithKeysOptions(options ...Option) Option {
	return func(p *Params) {
		p.KeysParams = nestedParams(p.KeysParams, options)
	}
}

func WithValuesOptions(options ...Option) Option {
	return func(p *Params) {
		p.ValuesParams = nestedParams(p.ValuesParams, options)
	}
}

// WithFormat sets a kind specific layout, e.g. the time layout of DateTime.
func WithFormat(format string) Option {
	return func(p *Params) {
		p.Format = ptr(format)
	}
}

func WithEnum(entries ...EnumEntry) Option {
	return func(p *Params) {
		p.Enum = append([]EnumEntry(nil), entries...)
	}
}

// WithEnumValues declares enum entries whose label is derived from the value.
func WithEnumValues(values ...string) Option {
	return func(p *Params) {
		p.Enum = make([]EnumEntry, 0, len(values))
		for _, value := range values {
			p.Enum = append(p.Enum, EnumEntry{Value: value})
		}
	}
}

// WithScope sets the schema whose fields a Reference points to.
func WithScope(scope *Schema) Option {
	return func(p *Params) {
		p.Scope = scope
	}
}

func nestedParams(current *Params, options []Option) *Params {
	record := collect(options)
	if current != nil {
		record = current.Merge(record)
	}
	return &record
}
