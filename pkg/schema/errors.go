package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrOwnershipCycle is returned when a field would end up owning one of
	// its own owners.
	ErrOwnershipCycle = errors.New("schema: ownership cycle")
	// ErrUnknownKind is returned by New for kinds the package does not build.
	ErrUnknownKind = errors.New("schema: unknown field kind")
	// ErrInvalidValue is wrapped by ParseError when a value has the wrong
	// shape for the field.
	ErrInvalidValue = errors.New("schema: invalid value")
)

// FieldOwnershipError reports a second claim on an owned field.
type FieldOwnershipError struct {
	Claimer   Field
	Field     Field
	Role      Role
	Owner     Field
	OwnerRole Role
}

func (e *FieldOwnershipError) Error() string {
	return fmt.Sprintf(
		"schema: %s can't claim %s as %s; it is already owned by %s as %s",
		e.Claimer, e.Field, e.Role, e.Owner, e.OwnerRole,
	)
}

// AnonymousFieldError reports an attempt to add an unnamed field to a schema.
type AnonymousFieldError struct {
	Schema *Schema
	Field  Field
}

func (e *AnonymousFieldError) Error() string {
	return fmt.Sprintf("schema: can't add %s to %s; fields added to a schema must have a name", e.Field, e.Schema)
}

// AnonymousGroupError reports an attempt to add an unnamed group.
type AnonymousGroupError struct {
	Schema *Schema
}

func (e *AnonymousGroupError) Error() string {
	return fmt.Sprintf("schema: can't add an unnamed group to %s", e.Schema)
}

// DuplicateFieldError reports two direct fields sharing a name.
type DuplicateFieldError struct {
	Schema *Schema
	Name   string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("schema: %s already declares a field named %q", e.Schema, e.Name)
}

// DuplicateGroupError reports two groups sharing a name on one schema.
type DuplicateGroupError struct {
	Schema *Schema
	Name   string
}

func (e *DuplicateGroupError) Error() string {
	return fmt.Sprintf("schema: %s already declares a group named %q", e.Schema, e.Name)
}

// FieldNotFoundError reports a name that does not resolve to a field.
type FieldNotFoundError struct {
	Schema *Schema
	Name   string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("schema: %s doesn't declare a field named %q", e.Schema, e.Name)
}

// GroupNotFoundError reports a field naming a group its schema lacks.
type GroupNotFoundError struct {
	Schema *Schema
	Field  Field
	Name   string
}

func (e *GroupNotFoundError) Error() string {
	if e.Field == nil {
		return fmt.Sprintf("schema: %s doesn't declare a group named %q", e.Schema, e.Name)
	}
	return fmt.Sprintf("schema: %s references group %q, which %s doesn't declare", e.Field, e.Name, e.Schema)
}

// GroupOwnershipError reports a group attached to a second schema.
type GroupOwnershipError struct {
	Group   *Group
	Schema  *Schema
	Current *Schema
}

func (e *GroupOwnershipError) Error() string {
	return fmt.Sprintf(
		"schema: can't add group %q to %s; it already belongs to %s",
		e.Group.Name(), e.Schema, e.Current,
	)
}

// FieldGroupChangeError reports a field already bound to a different group.
type FieldGroupChangeError struct {
	Field     Field
	Current   *Group
	Requested *Group
}

func (e *FieldGroupChangeError) Error() string {
	return fmt.Sprintf(
		"schema: can't move %s to group %q; it already belongs to group %q",
		e.Field, e.Requested.Name(), e.Current.Name(),
	)
}

// ParseError reports a value a field can't interpret. It is the only error
// of the package callers are expected to recover from.
type ParseError struct {
	Field Field
	Value any
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("schema: %s can't parse %#v", e.Field, e.Value)
	}
	return fmt.Sprintf("schema: %s can't parse %#v: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports every ParseError as ErrInvalidValue.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidValue
}

func parseError(f Field, value any, format string, args ...any) *ParseError {
	return &ParseError{
		Field: f,
		Value: value,
		Err:   fmt.Errorf("%w: "+format, append([]any{ErrInvalidValue}, args...)...),
	}
}
