package model

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/goliatone/go-modelkit/pkg/schema"
)

// Validate checks every member of the instance. It returns nil or a
// ValidationErrors value.
func (i *Instance) Validate() error {
	var errs ValidationErrors
	for member := range i.class.schema.Members() {
		value, _ := i.Get(member.Name())
		errs = validateValue(errs, member, member.Name(), value)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateRecord checks a decoded JSON object against s, parsing each value
// with its field first.
func ValidateRecord(s *schema.Schema, record map[string]any) error {
	var errs ValidationErrors
	for member := range s.Members() {
		raw, _ := member.ValueFromRecord(record)
		value, err := member.FromJSON(raw)
		if err != nil {
			errs = append(errs, &InvalidValueError{located{member, member.Name()}, err})
			continue
		}
		errs = validateValue(errs, member, member.Name(), value)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateValue(errs ValidationErrors, field schema.Field, path string, value any) ValidationErrors {
	if field.ValueIsBlank(value) {
		if field.Required() {
			errs = append(errs, &ValueRequiredError{located{field, path}})
		}
		return errs
	}

	switch f := field.(type) {
	case *schema.Collection:
		items, ok := listOf(value)
		if !ok {
			return errs
		}
		if lower, ok := f.MinItems(); ok && len(items) < lower {
			errs = append(errs, &NotEnoughItemsError{located{field, path}, lower, len(items)})
		}
		if upper, ok := f.MaxItems(); ok && len(items) > upper {
			errs = append(errs, &TooManyItemsError{located{field, path}, upper, len(items)})
		}
		if f.Items() != nil {
			for index, item := range items {
				errs = validateValue(errs, f.Items(), fmt.Sprintf("%s.%d", path, index), item)
			}
		}
	case *schema.Mapping:
		record, ok := recordOf(value)
		if !ok || f.Values() == nil {
			return errs
		}
		keys := make([]string, 0, len(record))
		for key := range record {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			errs = validateValue(errs, f.Values(), path+"."+key, record[key])
		}
	case *schema.Schema:
		record, ok := recordOf(value)
		if !ok {
			return errs
		}
		for member := range f.Members() {
			errs = validateValue(errs, member, path+"."+member.Name(), record[member.Name()])
		}
	}
	return errs
}

func listOf(value any) ([]any, bool) {
	if items, ok := value.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func recordOf(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case schema.Record:
		return v.Record(), true
	}
	return nil, false
}
