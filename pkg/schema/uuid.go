package schema

import (
	"strings"

	"github.com/google/uuid"
)

// UUID holds uuid.UUID values serialised in canonical form.
type UUID struct {
	base
}

func NewUUID(options ...Option) (*UUID, error) {
	return newUUID(collect(options))
}

func newUUID(p Params) (*UUID, error) {
	f := &UUID{}
	if err := f.init(f, KindUUID, kindDefaults{typ: "string"}, p); err != nil {
		return nil, err
	}
	return f, nil
}

// UUIDDefault is a default producer generating a random (version 4) UUID.
func UUIDDefault(any) any {
	return uuid.New()
}

func (f *UUID) Normalize(value any) (any, error) {
	return f.FromJSON(value)
}

func (f *UUID) FromJSON(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case uuid.UUID:
		return v, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, nil
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, &ParseError{Field: f, Value: raw, Err: err}
		}
		return id, nil
	}
	return nil, parseError(f, raw, "expected a UUID string, got %T", raw)
}

func (f *UUID) ToJSON(value any) (any, error) {
	parsed, err := f.FromJSON(value)
	if err != nil || parsed == nil {
		return nil, err
	}
	return parsed.(uuid.UUID).String(), nil
}

func (f *UUID) ValueIsBlank(value any) bool {
	if id, ok := value.(uuid.UUID); ok {
		return id == uuid.Nil
	}
	return f.base.ValueIsBlank(value)
}
