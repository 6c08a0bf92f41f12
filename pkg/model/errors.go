package model

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelkit/pkg/schema"
)

// UnknownFieldError reports access to a member the class doesn't declare.
type UnknownFieldError struct {
	Class *Class
	Name  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("model: %s has no field named %q", e.Class, e.Name)
}

// ValidationError is implemented by the errors Validate reports.
type ValidationError interface {
	error
	// Path is the dotted location of the offending value, with list
	// indexes and map keys included.
	Path() string
	InvalidField() schema.Field
}

type located struct {
	field schema.Field
	path  string
}

func (l located) Path() string               { return l.path }
func (l located) InvalidField() schema.Field { return l.field }

// ValueRequiredError reports a blank value for a required field.
type ValueRequiredError struct {
	located
}

func (e *ValueRequiredError) Error() string {
	return fmt.Sprintf("model: %s is required", e.path)
}

// NotEnoughItemsError reports a collection below its minimum size.
type NotEnoughItemsError struct {
	located
	Min   int
	Count int
}

func (e *NotEnoughItemsError) Error() string {
	return fmt.Sprintf("model: %s needs at least %d items, has %d", e.path, e.Min, e.Count)
}

// TooManyItemsError reports a collection above its maximum size.
type TooManyItemsError struct {
	located
	Max   int
	Count int
}

func (e *TooManyItemsError) Error() string {
	return fmt.Sprintf("model: %s accepts at most %d items, has %d", e.path, e.Max, e.Count)
}

// InvalidValueError wraps a value a field can't parse.
type InvalidValueError struct {
	located
	Err error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("model: %s: %v", e.path, e.Err)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// Issue is a serialisable summary of a validation error.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationErrors collects every problem found by Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, strings.TrimPrefix(err.Error(), "model: "))
	}
	return "model: validation failed: " + strings.Join(messages, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error {
	out := make([]error, 0, len(e))
	for _, err := range e {
		out = append(out, err)
	}
	return out
}

// Issues summarises the errors for reports.
func (e ValidationErrors) Issues() []Issue {
	issues := make([]Issue, 0, len(e))
	for _, err := range e {
		issue := Issue{
			Path:    err.Path(),
			Message: strings.TrimPrefix(err.Error(), "model: "),
		}
		if field := err.InvalidField(); field != nil {
			issue.Field = field.QualifiedName()
		}
		issues = append(issues, issue)
	}
	return issues
}
