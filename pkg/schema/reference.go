package schema

import "strings"

// Reference holds a Field of its scope schema as value. It serialises to the
// field's path relative to the scope.
type Reference struct {
	base
	scope *Schema
}

func NewReference(options ...Option) (*Reference, error) {
	return newReference(collect(options))
}

func newReference(p Params) (*Reference, error) {
	f := &Reference{scope: p.Scope}
	if err := f.init(f, KindReference, kindDefaults{typ: "string"}, p); err != nil {
		return nil, err
	}
	return f, nil
}

// Scope returns the schema references are resolved against.
func (f *Reference) Scope() *Schema {
	return f.scope
}

func (f *Reference) CopyParameters(overrides Params) (Params, error) {
	p, err := f.base.CopyParameters(overrides)
	if err != nil {
		return Params{}, err
	}
	if p.Scope == nil {
		p.Scope = f.scope
	}
	return p, nil
}

func (f *Reference) Normalize(value any) (any, error) {
	return f.FromJSON(value)
}

// FromJSON resolves a dotted path against the scope schema.
func (f *Reference) FromJSON(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case Field:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		if f.scope == nil {
			return nil, parseError(f, raw, "no scope to resolve against")
		}
		target, err := f.scope.Resolve(v)
		if err != nil {
			return nil, &ParseError{Field: f, Value: raw, Err: err}
		}
		return target, nil
	}
	return nil, parseError(f, raw, "expected a field path, got %T", raw)
}

func (f *Reference) ToJSON(value any) (any, error) {
	target, ok := value.(Field)
	if !ok || target == nil {
		return nil, nil
	}
	return f.relativePath(target), nil
}

func (f *Reference) relativePath(target Field) string {
	var segments []string
	for node := target; node != nil; node = node.Owner() {
		if f.scope != nil && node.core() == f.scope.core() {
			break
		}
		if node.Role() == RoleSchemaField {
			segments = append([]string{node.Name()}, segments...)
		}
	}
	return strings.Join(segments, ".")
}

// ValueID is the qualified name of the referenced field.
func (f *Reference) ValueID(value any) string {
	if target, ok := value.(Field); ok && target != nil {
		return target.QualifiedName()
	}
	return f.base.ValueID(value)
}

// ValueLabel is the qualified label of the referenced field.
func (f *Reference) ValueLabel(value any, options LabelOptions) string {
	if target, ok := value.(Field); ok && target != nil {
		return target.QualifiedLabel()
	}
	return f.base.ValueLabel(value, options)
}
