package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelkit/internal/labels"
	"github.com/goliatone/go-modelkit/pkg/hints"
)

// Kind identifies the concrete variant behind a Field.
type Kind string

const (
	KindBasic      Kind = "field"
	KindText       Kind = "text"
	KindInteger    Kind = "integer"
	KindFloat      Kind = "float"
	KindBoolean    Kind = "boolean"
	KindDate       Kind = "date"
	KindDateTime   Kind = "datetime"
	KindEnum       Kind = "enum"
	KindUUID       Kind = "uuid"
	KindReference  Kind = "reference"
	KindCollection Kind = "collection"
	KindMapping    Kind = "mapping"
	KindSchema     Kind = "schema"
)

// Role describes why an owner holds a field.
type Role int

const (
	RoleNone Role = iota
	RoleSchemaField
	RoleCollectionItems
	RoleMapKey
	RoleMapValue
)

func (r Role) String() string {
	switch r {
	case RoleSchemaField:
		return "SCHEMA_FIELD"
	case RoleCollectionItems:
		return "COLLECTION_ITEMS"
	case RoleMapKey:
		return "MAP_KEY"
	case RoleMapValue:
		return "MAP_VALUE"
	default:
		return "NONE"
	}
}

// DefaultFunc produces a default value for the carrier (usually a model
// instance) that asks for it. The carrier can be nil.
type DefaultFunc func(carrier any) any

// LabelOptions tunes ValueLabel.
type LabelOptions struct {
	// Format is a kind specific layout, e.g. a time layout for dates.
	Format string
}

// Field is the contract shared by every field kind.
type Field interface {
	fmt.Stringer
	hints.Target

	Kind() Kind
	Name() string
	Label() string
	DisplayLabel() string
	Description() string
	Type() string
	Required() bool
	Searchable() bool
	DataPath() string
	NullLabel() string
	DefaultValue() any
	GroupName() string
	AssignedGroup() *Group

	Owner() Field
	Role() Role
	QualifiedName() string
	QualifiedLabel() string
	Claim(field Field, role Role) error

	Registry() *hints.Registry
	Hint(h *hints.Hint) (any, bool)
	RequireHint(h *hints.Hint) (any, error)

	Copy(options ...Option) (Field, error)
	CopyParameters(overrides Params) (Params, error)

	ProduceDefaultValue(carrier any) any
	Normalize(value any) (any, error)
	ValueIsBlank(value any) bool
	FromJSON(raw any) (any, error)
	ToJSON(value any) (any, error)
	ValueLabel(value any, options LabelOptions) string
	ValueID(value any) string
	SearchableText(value any) string
	ValueFromRecord(record map[string]any) (any, bool)

	core() *base
}

// kindDefaults are the attribute values a kind uses when the caller leaves
// them unset.
type kindDefaults struct {
	typ        string
	searchable bool
}

// base holds the state and behaviour every kind shares. Kinds embed it and
// override the value-level methods they specialise; calls that must reach the
// override go through self.
type base struct {
	self     Field
	kind     Kind
	registry *hints.Registry

	name         string
	label        string
	description  string
	typ          string
	required     bool
	searchable   bool
	defaultValue any
	dataPath     string
	nullLabel    string

	groupName string
	group     *Group

	hintValues map[*hints.Hint]any
	hintOrder  []*hints.Hint

	owner Field
	role  Role
}

func (b *base) init(self Field, kind Kind, defaults kindDefaults, p Params) error {
	b.self = self
	b.kind = kind
	b.registry = p.Registry
	if b.registry == nil {
		b.registry = hints.Default
	}

	b.typ = defaults.typ
	b.searchable = defaults.searchable

	if p.Name != nil {
		b.name = *p.Name
	}
	if p.Label != nil {
		b.label = *p.Label
	}
	if p.Description != nil {
		b.description = *p.Description
	}
	if p.Type != nil {
		b.typ = *p.Type
	}
	if p.Required != nil {
		b.required = *p.Required
	}
	if p.Searchable != nil {
		b.searchable = *p.Searchable
	}
	if p.HasDefault {
		b.defaultValue = p.Default
	}
	if p.Group != nil {
		b.groupName = strings.TrimSpace(*p.Group)
	}
	if p.DataPath != nil {
		b.dataPath = *p.DataPath
	}
	if p.NullLabel != nil {
		b.nullLabel = *p.NullLabel
	}

	for _, entry := range p.Hints {
		if err := b.registry.Apply(self, entry.Hint, entry.Value); err != nil {
			return err
		}
	}
	return nil
}

func (b *base) core() *base { return b }

func (b *base) String() string {
	return fmt.Sprintf("%s(%s)", kindTitle(b.kind), b.QualifiedName())
}

func (b *base) Kind() Kind { return b.kind }
func (b *base) Name() string { return b.name }
func (b *base) Label() string { return b.label }
func (b *base) Description() string { return b.description }
func (b *base) Type() string { return b.typ }
func (b *base) Required() bool { return b.required }
func (b *base) Searchable() bool { return b.searchable }
func (b *base) DataPath() string { return b.dataPath }
func (b *base) NullLabel() string { return b.nullLabel }
func (b *base) DefaultValue() any { return b.defaultValue }
func (b *base) GroupName() string { return b.groupName }
func (b *base) AssignedGroup() *Group { return b.group }
func (b *base) Owner() Field { return b.owner }
func (b *base) Role() Role { return b.role }
func (b *base) Registry() *hints.Registry { return b.registry }

// DisplayLabel returns the label, deriving one from the name when unset.
func (b *base) DisplayLabel() string {
	if b.label != "" {
		return b.label
	}
	return labels.FromName(b.name)
}

// QualifiedName walks the ownership chain and joins the names of every named
// owner, root first, with dots. Unnamed fields have no qualified name.
func (b *base) QualifiedName() string {
	if b.name == "" {
		return ""
	}
	if b.owner != nil {
		if ownerName := b.owner.QualifiedName(); ownerName != "" {
			return ownerName + "." + b.name
		}
	}
	return b.name
}

// QualifiedLabel joins display labels along the ownership chain.
func (b *base) QualifiedLabel() string {
	if b.owner != nil && b.owner.Name() != "" {
		return labels.Join(b.owner.QualifiedLabel(), b.DisplayLabel())
	}
	return b.DisplayLabel()
}

// Claim makes b the owner of field, in the given role. A field can only be
// claimed once.
func (b *base) Claim(field Field, role Role) error {
	if field == nil {
		return fmt.Errorf("schema: %s can't claim a nil field as %s", b.self, role)
	}
	target := field.core()
	if target.owner != nil {
		return &FieldOwnershipError{
			Claimer:   b.self,
			Field:     field,
			Role:      role,
			Owner:     target.owner,
			OwnerRole: target.role,
		}
	}
	for current := b.self; current != nil; current = current.Owner() {
		if current.core() == target {
			return fmt.Errorf("schema: %s can't claim %s as %s: %w", b.self, field, role, ErrOwnershipCycle)
		}
	}
	target.owner = b.self
	target.role = role
	return nil
}

func (b *base) setGroup(group *Group) error {
	if b.group != nil && b.group != group {
		return &FieldGroupChangeError{Field: b.self, Current: b.group, Requested: group}
	}
	b.group = group
	if group != nil {
		b.groupName = group.Name()
	}
	return nil
}

// StoreHint writes a hint value without going through the registry. Use the
// With* options, or hints.Registry.Apply, to honour custom setters.
func (b *base) StoreHint(h *hints.Hint, value any) {
	if b.hintValues == nil {
		b.hintValues = make(map[*hints.Hint]any)
	}
	if _, exists := b.hintValues[h]; !exists {
		b.hintOrder = append(b.hintOrder, h)
	}
	b.hintValues[h] = value
}

func (b *base) Hint(h *hints.Hint) (any, bool) {
	value, ok := b.hintValues[h]
	return value, ok
}

// RequireHint returns the value set for h or an UndefinedHintError.
func (b *base) RequireHint(h *hints.Hint) (any, error) {
	value, ok := b.hintValues[h]
	if !ok {
		return nil, &hints.UndefinedHintError{Target: b.self, Hint: h}
	}
	return value, nil
}

// Copy builds a detached field of the same kind from CopyParameters.
func (b *base) Copy(options ...Option) (Field, error) {
	params, err := b.self.CopyParameters(collect(options))
	if err != nil {
		return nil, err
	}
	return build(b.kind, params)
}

// CopyParameters returns the record needed to rebuild an equivalent field:
// the shared attributes, every hint set on the field, and overrides on top.
func (b *base) CopyParameters(overrides Params) (Params, error) {
	p := Params{
		Registry:    b.registry,
		Name:        ptr(b.name),
		Label:       ptr(b.label),
		Description: ptr(b.description),
		Type:        ptr(b.typ),
		Required:    ptr(b.required),
		Searchable:  ptr(b.searchable),
		DataPath:    ptr(b.dataPath),
		NullLabel:   ptr(b.nullLabel),
	}
	if b.defaultValue != nil {
		p.Default = b.defaultValue
		p.HasDefault = true
	}
	if b.groupName != "" {
		p.Group = ptr(b.groupName)
	}
	for _, h := range b.hintOrder {
		p.Hints = append(p.Hints, HintValue{Hint: h, Value: b.hintValues[h]})
	}
	return p.Merge(overrides), nil
}

// ProduceDefaultValue returns the literal default, or calls it when it is a
// producer function.
func (b *base) ProduceDefaultValue(carrier any) any {
	switch producer := b.defaultValue.(type) {
	case DefaultFunc:
		return producer(carrier)
	case func(any) any:
		return producer(carrier)
	case func() any:
		return producer()
	}
	return b.defaultValue
}

func (b *base) Normalize(value any) (any, error) {
	return value, nil
}

// ValueIsBlank reports whether value fails a required constraint: nil and
// the empty string are blank.
func (b *base) ValueIsBlank(value any) bool {
	if value == nil {
		return true
	}
	if text, ok := value.(string); ok {
		return text == ""
	}
	return false
}

func (b *base) FromJSON(raw any) (any, error) {
	return raw, nil
}

func (b *base) ToJSON(value any) (any, error) {
	return value, nil
}

func (b *base) ValueLabel(value any, _ LabelOptions) string {
	if b.self.ValueIsBlank(value) {
		return b.nullLabel
	}
	return fmt.Sprint(value)
}

func (b *base) ValueID(value any) string {
	if b.self.ValueIsBlank(value) {
		return ""
	}
	return fmt.Sprint(value)
}

func (b *base) SearchableText(value any) string {
	return b.self.ValueLabel(value, LabelOptions{})
}

// ValueFromRecord reads the field's value out of a decoded JSON object. The
// data path, when set, is a dotted path into nested objects; otherwise the
// field name is used as a flat key.
func (b *base) ValueFromRecord(record map[string]any) (any, bool) {
	path := b.dataPath
	if path == "" {
		path = b.name
	}
	if path == "" || record == nil {
		return nil, false
	}
	return lookupPath(record, strings.Split(path, "."))
}

func lookupPath(record map[string]any, segments []string) (any, bool) {
	current := any(record)
	for _, segment := range segments {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = object[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func ptr[T any](value T) *T {
	return &value
}
