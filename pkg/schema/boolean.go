package schema

import (
	"strconv"
	"strings"
)

// Boolean holds bool values. ValueLabel uses "Yes" and "No".
type Boolean struct {
	base
}

func NewBoolean(options ...Option) (*Boolean, error) {
	return newBoolean(collect(options))
}

func newBoolean(p Params) (*Boolean, error) {
	f := &Boolean{}
	if err := f.init(f, KindBoolean, kindDefaults{typ: "boolean"}, p); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Boolean) Normalize(value any) (any, error) {
	return f.FromJSON(value)
}

func (f *Boolean) FromJSON(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, &ParseError{Field: f, Value: raw, Err: err}
		}
		return parsed, nil
	}
	return nil, parseError(f, raw, "expected a boolean, got %T", raw)
}

func (f *Boolean) ToJSON(value any) (any, error) {
	return f.FromJSON(value)
}

func (f *Boolean) ValueLabel(value any, options LabelOptions) string {
	switch value {
	case true:
		return "Yes"
	case false:
		return "No"
	}
	return f.base.ValueLabel(value, options)
}
