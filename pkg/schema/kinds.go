package schema

import (
	"fmt"
)

var kindTitles = map[Kind]string{
	KindBasic:      "Field",
	KindText:       "Text",
	KindInteger:    "Integer",
	KindFloat:      "Float",
	KindBoolean:    "Boolean",
	KindDate:       "Date",
	KindDateTime:   "DateTime",
	KindEnum:       "Enum",
	KindUUID:       "UUID",
	KindReference:  "Reference",
	KindCollection: "Collection",
	KindMapping:    "Mapping",
	KindSchema:     "Schema",
}

func kindTitle(kind Kind) string {
	if title, ok := kindTitles[kind]; ok {
		return title
	}
	return string(kind)
}

// Kinds lists every kind New can build, in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindBasic, KindText, KindInteger, KindFloat, KindBoolean, KindDate, KindDateTime,
		KindEnum, KindUUID, KindReference, KindCollection, KindMapping, KindSchema,
	}
}

// ParseKind resolves a kind name, accepting the aliases used in definition
// documents.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "field", "basic":
		return KindBasic, nil
	case "text", "string":
		return KindText, nil
	case "integer", "int":
		return KindInteger, nil
	case "float", "number":
		return KindFloat, nil
	case "boolean", "bool":
		return KindBoolean, nil
	case "date":
		return KindDate, nil
	case "datetime", "date-time":
		return KindDateTime, nil
	case "enum":
		return KindEnum, nil
	case "uuid":
		return KindUUID, nil
	case "reference", "ref":
		return KindReference, nil
	case "collection", "array", "list":
		return KindCollection, nil
	case "mapping", "map":
		return KindMapping, nil
	case "schema", "object":
		return KindSchema, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, name)
}

// New builds a field of the given kind.
func New(kind Kind, options ...Option) (Field, error) {
	return build(kind, collect(options))
}

// Build builds a field of the given kind from a prepared record.
func Build(kind Kind, params Params) (Field, error) {
	return build(kind, params)
}

func build(kind Kind, p Params) (Field, error) {
	switch kind {
	case KindBasic:
		return wrap(newBasic(p))
	case KindText:
		return wrap(newText(p))
	case KindInteger:
		return wrap(newInteger(p))
	case KindFloat:
		return wrap(newFloat(p))
	case KindBoolean:
		return wrap(newBoolean(p))
	case KindDate:
		return wrap(newDate(p))
	case KindDateTime:
		return wrap(newDateTime(p))
	case KindEnum:
		return wrap(newEnum(p))
	case KindUUID:
		return wrap(newUUID(p))
	case KindReference:
		return wrap(newReference(p))
	case KindCollection:
		return wrap(newCollection(p))
	case KindMapping:
		return wrap(newMapping(p))
	case KindSchema:
		return wrap(newSchema(p))
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

// wrap keeps a nil concrete pointer from turning into a non-nil Field.
func wrap[F Field](f F, err error) (Field, error) {
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CopyAs copies f and returns the concrete type of the copy.
func CopyAs[F Field](f F, options ...Option) (F, error) {
	var zero F
	copied, err := f.Copy(options...)
	if err != nil {
		return zero, err
	}
	typed, ok := copied.(F)
	if !ok {
		return zero, fmt.Errorf("schema: copy of %s is a %T", f, copied)
	}
	return typed, nil
}

// Must panics when err is not nil. It is meant for package level
// declarations.
func Must[F any](f F, err error) F {
	if err != nil {
		panic(err)
	}
	return f
}
