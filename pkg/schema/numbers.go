package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Integer holds int64 values.
type Integer struct {
	base
}

func NewInteger(options ...Option) (*Integer, error) {
	return newInteger(collect(options))
}

func newInteger(p Params) (*Integer, error) {
	f := &Integer{}
	if err := f.init(f, KindInteger, kindDefaults{typ: "integer"}, p); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Integer) Normalize(value any) (any, error) {
	return f.FromJSON(value)
}

// FromJSON accepts JSON numbers without a fractional part, Go integers and
// numeric strings. Values outside the int64 range are rejected.
func (f *Integer) FromJSON(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case uint:
		return f.fromUnsigned(raw, uint64(v))
	case uint64:
		return f.fromUnsigned(raw, v)
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case float64:
		return f.fromFloat(raw, v)
	case float32:
		return f.fromFloat(raw, float64(v))
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, &ParseError{Field: f, Value: raw, Err: err}
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, &ParseError{Field: f, Value: raw, Err: err}
		}
		return n, nil
	}
	return nil, parseError(f, raw, "expected an integer, got %T", raw)
}

func (f *Integer) fromUnsigned(raw any, v uint64) (any, error) {
	if v > math.MaxInt64 {
		return nil, parseError(f, raw, "%d overflows int64", v)
	}
	return int64(v), nil
}

// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
func (f *Integer) fromFloat(raw any, v float64) (any, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return nil, parseError(f, raw, "%v is not an integer", v)
	}
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return nil, parseError(f, raw, "%v overflows int64", v)
	}
	return int64(v), nil
}

func (f *Integer) ToJSON(value any) (any, error) {
	return f.FromJSON(value)
}

// Float holds float64 values.
type Float struct {
	base
}

func NewFloat(options ...Option) (*Float, error) {
	return newFloat(collect(options))
}

func newFloat(p Params) (*Float, error) {
	f := &Float{}
	if err := f.init(f, KindFloat, kindDefaults{typ: "number"}, p); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Float) Normalize(value any) (any, error) {
	return f.FromJSON(value)
}

// FromJSON accepts JSON numbers, Go integers and floats, and numeric
// strings.
func (f *Float) FromJSON(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return nil, &ParseError{Field: f, Value: raw, Err: err}
		}
		return n, nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, &ParseError{Field: f, Value: raw, Err: err}
		}
		return n, nil
	}
	return nil, parseError(f, raw, "expected a number, got %T", raw)
}

func (f *Float) ToJSON(value any) (any, error) {
	return f.FromJSON(value)
}
