package schema

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Schema is a field made of an ordered set of named member fields. It can
// inherit members and groups from a base schema.
type Schema struct {
	base

	parent     *Schema
	fields     []Field
	index      map[string]Field
	groups     []*Group
	groupIndex map[string]*Group
	grouped    bool
}

// NewSchema builds a schema. Groups are added before fields so that fields
// can name them.
func NewSchema(options ...Option) (*Schema, error) {
	return newSchema(collect(options))
}

func newSchema(p Params) (*Schema, error) {
	s := &Schema{
		index:      make(map[string]Field),
		groupIndex: make(map[string]*Group),
	}
	if err := s.init(s, KindSchema, kindDefaults{typ: "object"}, p); err != nil {
		return nil, err
	}
	s.parent = p.Base

	// Fields are claimed only after all of them are validated. Groups are
	// released again when construction fails.
	for _, group := range p.Groups {
		if err := s.AddGroup(group); err != nil {
			s.releaseGroups()
			return nil, err
		}
	}
	fields := make([]Field, 0, len(p.Fields))
	taken := make(map[string]struct{}, len(p.Fields))
	isTaken := func(name string) bool {
		_, ok := taken[name]
		return ok
	}
	for _, spec := range p.Fields {
		if spec.Field == nil {
			s.releaseGroups()
			return nil, &FieldNotFoundError{Schema: s, Name: spec.Name}
		}
		if _, err := s.check(spec.Field, isTaken); err != nil {
			s.releaseGroups()
			return nil, err
		}
		taken[spec.Field.Name()] = struct{}{}
		fields = append(fields, spec.Field)
	}
	for _, field := range fields {
		if err := s.Add(field); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// releaseGroups detaches the groups of a schema that failed to build.
func (s *Schema) releaseGroups() {
	for _, group := range s.groups {
		group.schema = nil
	}
	s.groups = nil
	clear(s.groupIndex)
}

// Base returns the schema s inherits from, nil for root schemas.
func (s *Schema) Base() *Schema {
	return s.parent
}

// Add appends a detached, named field to the schema. When groups are visible
// from the schema and the field names one, the field joins it. A group
// inherited from a base is first shadowed by a local copy so that base
// groups never gain members of derived schemas.
func (s *Schema) Add(field Field) error {
	group, err := s.check(field, s.hasOwnField)
	if err != nil {
		return err
	}

	if err := s.Claim(field, RoleSchemaField); err != nil {
		return err
	}
	s.fields = append(s.fields, field)
	s.index[field.Name()] = field

	if group != nil {
		if group.schema != s {
			shadow := group.Copy()
			if err := s.AddGroup(shadow); err != nil {
				return err
			}
			group = shadow
		}
		if err := group.AddField(field); err != nil {
			return err
		}
		s.grouped = true
	}
	return nil
}

// check validates field against s without changing either. taken reports
// the names already used at this level. It returns the group the field resolves
// to, nil when it stays ungrouped.
func (s *Schema) check(field Field, taken func(name string) bool) (*Group, error) {
	if field == nil {
		return nil, fmt.Errorf("schema: can't add a nil field to %s", s)
	}
	name := field.Name()
	if name == "" {
		return nil, &AnonymousFieldError{Schema: s, Field: field}
	}
	if taken(name) {
		return nil, &DuplicateFieldError{Schema: s, Name: name}
	}
	if owner := field.Owner(); owner != nil {
		return nil, &FieldOwnershipError{
			Claimer:   s,
			Field:     field,
			Role:      RoleSchemaField,
			Owner:     owner,
			OwnerRole: field.Role(),
		}
	}

	groupName := field.GroupName()
	if groupName == "" || !s.hasGroups() {
		return nil, nil
	}
	group := s.Group(groupName)
	if group == nil {
		return nil, &GroupNotFoundError{Schema: s, Field: field, Name: groupName}
	}
	if current := field.AssignedGroup(); current != nil && (current != group || group.schema != s) {
		return nil, &FieldGroupChangeError{Field: field, Current: current, Requested: group}
	}
	return group, nil
}

func (s *Schema) hasOwnField(name string) bool {
	_, ok := s.index[name]
	return ok
}

// hasGroups reports whether s or one of its bases declares a group.
func (s *Schema) hasGroups() bool {
	for schema := s; schema != nil; schema = schema.parent {
		if len(schema.groups) > 0 {
			return true
		}
	}
	return false
}

// AddGroup attaches a detached, named group to the schema.
func (s *Schema) AddGroup(group *Group) error {
	if group == nil || group.Name() == "" {
		return &AnonymousGroupError{Schema: s}
	}
	if group.schema != nil {
		return &GroupOwnershipError{Group: group, Schema: s, Current: group.schema}
	}
	if _, exists := s.groupIndex[group.name]; exists {
		return &DuplicateGroupError{Schema: s, Name: group.name}
	}
	group.schema = s
	s.groups = append(s.groups, group)
	s.groupIndex[group.name] = group
	return nil
}

// Grouped reports whether any field of the schema was attached to a group.
func (s *Schema) Grouped() bool {
	return s.grouped
}

// Field returns the most derived field called name, or nil.
func (s *Schema) Field(name string) Field {
	for schema := s; schema != nil; schema = schema.parent {
		if field, ok := schema.index[name]; ok {
			return field
		}
	}
	return nil
}

// OwnField returns the field called name declared directly on s, or nil.
func (s *Schema) OwnField(name string) Field {
	return s.index[name]
}

// Group returns the most derived group called name, or nil.
func (s *Schema) Group(name string) *Group {
	for schema := s; schema != nil; schema = schema.parent {
		if group, ok := schema.groupIndex[name]; ok {
			return group
		}
	}
	return nil
}

// Fields iterates over the fields of s and then those of its bases, in
// insertion order per level. Shadowed fields are included.
func (s *Schema) Fields() iter.Seq[Field] {
	return chain(s.levels())
}

// OwnFields iterates over the fields declared directly on s.
func (s *Schema) OwnFields() iter.Seq[Field] {
	return slices.Values(slices.Clone(s.fields))
}

// Members iterates like Fields but skips fields shadowed by a more derived
// field of the same name.
func (s *Schema) Members() iter.Seq[Field] {
	levels := s.levels()
	return func(yield func(Field) bool) {
		seen := make(map[string]struct{})
		for _, level := range levels {
			for _, field := range level {
				if _, shadowed := seen[field.Name()]; shadowed {
					continue
				}
				seen[field.Name()] = struct{}{}
				if !yield(field) {
					return
				}
			}
		}
	}
}

// Groups iterates over the groups visible from s, most derived first,
// skipping shadowed names.
func (s *Schema) Groups() iter.Seq[*Group] {
	var visible []*Group
	seen := make(map[string]struct{})
	for schema := s; schema != nil; schema = schema.parent {
		for _, group := range schema.groups {
			if _, shadowed := seen[group.name]; shadowed {
				continue
			}
			seen[group.name] = struct{}{}
			visible = append(visible, group)
		}
	}
	return slices.Values(visible)
}

// OwnGroups iterates over the groups declared directly on s.
func (s *Schema) OwnGroups() iter.Seq[*Group] {
	return slices.Values(slices.Clone(s.groups))
}

// HasFields reports whether s or one of its bases declares a field.
func (s *Schema) HasFields() bool {
	for schema := s; schema != nil; schema = schema.parent {
		if len(schema.fields) > 0 {
			return true
		}
	}
	return false
}

// HasOwnFields reports whether s declares a field itself.
func (s *Schema) HasOwnFields() bool {
	return len(s.fields) > 0
}

func (s *Schema) levels() [][]Field {
	var levels [][]Field
	for schema := s; schema != nil; schema = schema.parent {
		levels = append(levels, slices.Clone(schema.fields))
	}
	return levels
}

func chain[T any](levels [][]T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, level := range levels {
			for _, item := range level {
				if !yield(item) {
					return
				}
			}
		}
	}
}

// Resolve looks up a dotted path of field names. Collections and mappings
// are crossed transparently: a segment that doesn't name their item, key or
// value field is looked up inside the item (or value) field.
func (s *Schema) Resolve(path string) (Field, error) {
	var current Field = s
	for _, segment := range strings.Split(path, ".") {
		next := child(current, segment)
		if next == nil {
			return nil, &FieldNotFoundError{Schema: s, Name: path}
		}
		current = next
	}
	return current, nil
}

func child(f Field, name string) Field {
	switch node := f.(type) {
	case *Schema:
		return node.Field(name)
	case *Collection:
		if node.items == nil {
			return nil
		}
		if name == "items" || node.items.Name() == name {
			return node.items
		}
		return child(node.items, name)
	case *Mapping:
		if node.keys != nil && (name == "keys" || node.keys.Name() == name) {
			return node.keys
		}
		if node.values == nil {
			return nil
		}
		if name == "values" || node.values.Name() == name {
			return node.values
		}
		return child(node.values, name)
	}
	return nil
}

// CopyParameters extends the base record with the schema's members. Groups
// are cloned, and every member is cloned or reused following produce. The
// base schema is not carried over: inherited members are flattened into the
// copy. An explicit field list (WithFieldNames, WithFields) replaces the
// member set; names resolve against the fields declared on s only.
func (s *Schema) CopyParameters(overrides Params) (Params, error) {
	specs := overrides.Fields
	allFields := overrides.AllFields
	perField := overrides.PerField
	overrides.Fields, overrides.AllFields, overrides.PerField = nil, nil, nil

	p, err := s.base.CopyParameters(overrides)
	if err != nil {
		return Params{}, err
	}

	if overrides.Groups == nil {
		p.Groups = nil
		for group := range s.Groups() {
			p.Groups = append(p.Groups, group.Copy())
		}
	}

	produceField := func(field Field) (Field, error) {
		return produce(field, allFields, perField[field.Name()])
	}

	fields := []FieldSpec{}
	if specs != nil {
		for _, spec := range specs {
			source := spec.Field
			if source == nil {
				source = s.OwnField(spec.Name)
				if source == nil {
					return Params{}, &FieldNotFoundError{Schema: s, Name: spec.Name}
				}
			}
			field, err := produceField(source)
			if err != nil {
				return Params{}, err
			}
			fields = append(fields, FieldSpec{Field: field})
		}
	} else {
		for member := range s.Members() {
			field, err := produceField(member)
			if err != nil {
				return Params{}, err
			}
			fields = append(fields, FieldSpec{Field: field})
		}
	}
	p.Fields = fields
	return p, nil
}

// ValueIsBlank treats nil and empty objects as blank.
func (s *Schema) ValueIsBlank(value any) bool {
	if value == nil {
		return true
	}
	if record, ok := value.(map[string]any); ok {
		return len(record) == 0
	}
	return false
}

// FromJSON parses each member present in a JSON object.
func (s *Schema) FromJSON(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	record, ok := raw.(map[string]any)
	if !ok {
		return nil, parseError(s, raw, "expected an object, got %T", raw)
	}
	out := make(map[string]any, len(record))
	for member := range s.Members() {
		value, ok := record[member.Name()]
		if !ok {
			continue
		}
		parsed, err := member.FromJSON(value)
		if err != nil {
			return nil, err
		}
		out[member.Name()] = parsed
	}
	return out, nil
}

// ToJSON serialises each member present in value.
func (s *Schema) ToJSON(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	record, err := asRecord(value)
	if err != nil {
		return nil, parseError(s, value, "%v", err)
	}
	out := make(map[string]any, len(record))
	for member := range s.Members() {
		fieldValue, ok := record[member.Name()]
		if !ok {
			continue
		}
		serialised, err := member.ToJSON(fieldValue)
		if err != nil {
			return nil, err
		}
		out[member.Name()] = serialised
	}
	return out, nil
}

// ValueLabel labels an object with the labels of its searchable members.
func (s *Schema) ValueLabel(value any, options LabelOptions) string {
	if s.ValueIsBlank(value) {
		return s.nullLabel
	}
	record, err := asRecord(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	var parts []string
	for member := range s.Members() {
		fieldValue, ok := record[member.Name()]
		if !ok || member.ValueIsBlank(fieldValue) {
			continue
		}
		parts = append(parts, member.ValueLabel(fieldValue, options))
	}
	return strings.Join(parts, " ")
}

// SearchableText concatenates the searchable text of searchable members.
func (s *Schema) SearchableText(value any) string {
	record, err := asRecord(value)
	if err != nil || len(record) == 0 {
		return ""
	}
	var parts []string
	for member := range s.Members() {
		if !member.Searchable() {
			continue
		}
		if text := member.SearchableText(record[member.Name()]); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Record is implemented by values that expose their state as a map, such as
// model instances.
type Record interface {
	Record() map[string]any
}

func asRecord(value any) (map[string]any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case Record:
		return v.Record(), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		entries := rv.MapRange()
		for entries.Next() {
			out[entries.Key().String()] = entries.Value().Interface()
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected an object, got %T", value)
}
