package schema

import (
	"fmt"
	"strings"
)

// Text holds strings. It is searchable unless told otherwise.
type Text struct {
	base
}

func NewText(options ...Option) (*Text, error) {
	return newText(collect(options))
}

func newText(p Params) (*Text, error) {
	f := &Text{}
	if err := f.init(f, KindText, kindDefaults{typ: "string", searchable: true}, p); err != nil {
		return nil, err
	}
	return f, nil
}

// Normalize runs the sanitizer installed with HintSanitize, if any.
func (f *Text) Normalize(value any) (any, error) {
	text, ok := value.(string)
	if !ok {
		return value, nil
	}
	if policy := sanitizerOf(f); policy != nil {
		return strings.TrimSpace(policy.Sanitize(text)), nil
	}
	return text, nil
}

func (f *Text) FromJSON(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return nil, parseError(f, raw, "expected a string, got %T", raw)
}

func (f *Text) ToJSON(value any) (any, error) {
	return f.FromJSON(value)
}

func (f *Text) ValueIsBlank(value any) bool {
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text) == ""
	}
	return value == nil
}
