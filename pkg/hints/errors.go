package hints

import (
	"errors"
	"fmt"
)

// ErrAmbiguousHint is returned by Lookup when a name maps to more than one
// declaration.
var ErrAmbiguousHint = errors.New("hints: ambiguous hint name")

// UnknownHintError reports an attempt to set a hint, or a string key, that
// was never declared.
type UnknownHintError struct {
	Target fmt.Stringer
	Hint   *Hint
	Name   string
	Value  any
}

func (e *UnknownHintError) Error() string {
	key := e.Name
	if e.Hint != nil {
		key = e.Hint.String()
	}
	if e.Target == nil {
		return fmt.Sprintf("hints: %q is not a declared hint", key)
	}
	return fmt.Sprintf(
		"hints: can't set %s to %v on %s; it is not a declared hint (use hints.Declare to add extension attributes)",
		key, e.Value, e.Target,
	)
}

// UndefinedHintError reports that a required hint has no value on a target.
type UndefinedHintError struct {
	Target fmt.Stringer
	Hint   *Hint
}

func (e *UndefinedHintError) Error() string {
	return fmt.Sprintf("hints: %s doesn't define a value for %s", e.Target, e.Hint)
}
