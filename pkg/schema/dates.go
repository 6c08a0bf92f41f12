package schema

import (
	"strings"
	"time"
)

const (
	// DateLayout is the wire format of Date values.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the wire format of DateTime values.
	DateTimeLayout = time.RFC3339Nano
)

// DateTime holds time.Time values serialised as RFC 3339.
type DateTime struct {
	temporal
}

func NewDateTime(options ...Option) (*DateTime, error) {
	return newDateTime(collect(options))
}

func newDateTime(p Params) (*DateTime, error) {
	f := &DateTime{temporal{layout: DateTimeLayout, labelLayout: "2006-01-02 15:04"}}
	if err := f.setup(f, KindDateTime, p); err != nil {
		return nil, err
	}
	return f, nil
}

// Date holds time.Time values truncated to the day, serialised as
// YYYY-MM-DD.
type Date struct {
	temporal
}

func NewDate(options ...Option) (*Date, error) {
	return newDate(collect(options))
}

func newDate(p Params) (*Date, error) {
	f := &Date{temporal{layout: DateLayout, labelLayout: DateLayout, dayOnly: true}}
	if err := f.setup(f, KindDate, p); err != nil {
		return nil, err
	}
	return f, nil
}

// temporal is shared by the date kinds. The Format parameter sets the layout
// used by ValueLabel.
type temporal struct {
	base
	layout      string
	labelLayout string
	format      string
	dayOnly     bool
}

func (t *temporal) setup(self Field, kind Kind, p Params) error {
	if p.Format != nil {
		t.format = *p.Format
	}
	return t.init(self, kind, kindDefaults{typ: "string"}, p)
}

// Format returns the label layout set with WithFormat.
func (t *temporal) Format() string {
	return t.format
}

func (t *temporal) CopyParameters(overrides Params) (Params, error) {
	p, err := t.base.CopyParameters(overrides)
	if err != nil {
		return Params{}, err
	}
	if p.Format == nil && t.format != "" {
		p.Format = ptr(t.format)
	}
	return p, nil
}

func (t *temporal) Normalize(value any) (any, error) {
	return t.FromJSON(value)
}

func (t *temporal) FromJSON(raw any) (any, error) {
	var parsed time.Time
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		parsed = v
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, nil
		}
		var err error
		parsed, err = time.Parse(t.layout, v)
		if err != nil && t.dayOnly {
			// Accept full timestamps for dates and keep the calendar day of
			// their own offset.
			parsed, err = time.Parse(DateTimeLayout, v)
		}
		if err != nil {
			return nil, &ParseError{Field: t.self, Value: raw, Err: err}
		}
	default:
		return nil, parseError(t.self, raw, "expected a %s string, got %T", t.layout, raw)
	}
	if t.dayOnly {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	}
	return parsed, nil
}

func (t *temporal) ToJSON(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return v.Format(t.layout), nil
	case string:
		parsed, err := t.FromJSON(v)
		if err != nil || parsed == nil {
			return nil, err
		}
		return parsed.(time.Time).Format(t.layout), nil
	}
	return nil, parseError(t.self, value, "expected a time.Time, got %T", value)
}

func (t *temporal) ValueLabel(value any, options LabelOptions) string {
	when, ok := value.(time.Time)
	if !ok || when.IsZero() {
		return t.base.ValueLabel(value, options)
	}
	layout := options.Format
	if layout == "" {
		layout = t.format
	}
	if layout == "" {
		layout = t.labelLayout
	}
	return when.Format(layout)
}

func (t *temporal) ValueID(value any) string {
	if when, ok := value.(time.Time); ok {
		return when.Format(t.layout)
	}
	return t.base.ValueID(value)
}

func (t *temporal) ValueIsBlank(value any) bool {
	if when, ok := value.(time.Time); ok {
		return when.IsZero()
	}
	return t.base.ValueIsBlank(value)
}
