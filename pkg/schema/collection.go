package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Collection is a field holding a list of values described by its item
// field. MinItems and MaxItems are exposed for validation layers; the field
// itself doesn't enforce them.
type Collection struct {
	base
	items    Field
	minItems *int
	maxItems *int
}

func NewCollection(options ...Option) (*Collection, error) {
	return newCollection(collect(options))
}

func newCollection(p Params) (*Collection, error) {
	c := &Collection{minItems: p.MinItems, maxItems: p.MaxItems}
	if err := c.init(c, KindCollection, kindDefaults{typ: "array"}, p); err != nil {
		return nil, err
	}
	if c.minItems != nil && c.maxItems != nil && *c.minItems > *c.maxItems {
		return nil, fmt.Errorf("schema: %s has minItems %d greater than maxItems %d", c, *c.minItems, *c.maxItems)
	}
	c.items = p.Items
	if err := claimNested(c, nestedSlot{field: c.items, role: RoleCollectionItems}); err != nil {
		return nil, err
	}
	return c, nil
}

// Items returns the field describing each element, nil when unset.
func (c *Collection) Items() Field {
	return c.items
}

// MinItems returns the lower bound on the number of items, if any.
func (c *Collection) MinItems() (int, bool) {
	if c.minItems == nil {
		return 0, false
	}
	return *c.minItems, true
}

// MaxItems returns the upper bound on the number of items, if any.
func (c *Collection) MaxItems() (int, bool) {
	if c.maxItems == nil {
		return 0, false
	}
	return *c.maxItems, true
}

// CopyParameters clones the item field, or adopts the replacement passed
// with WithItems. WithItemsOptions customises the clone.
func (c *Collection) CopyParameters(overrides Params) (Params, error) {
	replacement, itemParams := overrides.Items, overrides.ItemsParams
	overrides.Items, overrides.ItemsParams = nil, nil

	p, err := c.base.CopyParameters(overrides)
	if err != nil {
		return Params{}, err
	}
	if p.MinItems == nil {
		p.MinItems = c.minItems
	}
	if p.MaxItems == nil {
		p.MaxItems = c.maxItems
	}
	if p.Items, err = reproduce(c.items, replacement, itemParams); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (c *Collection) ValueIsBlank(value any) bool {
	if value == nil {
		return true
	}
	items, err := asList(value)
	return err == nil && len(items) == 0
}

// Normalize normalizes every item through the item field.
func (c *Collection) Normalize(value any) (any, error) {
	if value == nil || c.items == nil {
		return value, nil
	}
	items, err := asList(value)
	if err != nil {
		return nil, parseError(c, value, "%v", err)
	}
	out := make([]any, len(items))
	for i, item := range items {
		if out[i], err = c.items.Normalize(item); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Collection) FromJSON(raw any) (any, error) {
	return c.eachItem(raw, func(item any) (any, error) {
		return c.items.FromJSON(item)
	})
}

func (c *Collection) ToJSON(value any) (any, error) {
	return c.eachItem(value, func(item any) (any, error) {
		return c.items.ToJSON(item)
	})
}

func (c *Collection) eachItem(value any, fn func(any) (any, error)) (any, error) {
	if value == nil {
		return nil, nil
	}
	items, err := asList(value)
	if err != nil {
		return nil, parseError(c, value, "%v", err)
	}
	if c.items == nil {
		return items, nil
	}
	out := make([]any, len(items))
	for i, item := range items {
		if out[i], err = fn(item); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ValueLabel joins the labels of each item.
func (c *Collection) ValueLabel(value any, options LabelOptions) string {
	if c.ValueIsBlank(value) {
		return c.nullLabel
	}
	items, err := asList(value)
	if err != nil || c.items == nil {
		return fmt.Sprint(value)
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, c.items.ValueLabel(item, options))
	}
	return strings.Join(parts, ", ")
}

func (c *Collection) SearchableText(value any) string {
	items, err := asList(value)
	if err != nil || c.items == nil {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if text := c.items.SearchableText(item); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func asList(value any) ([]any, error) {
	if items, ok := value.([]any); ok {
		return items, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a list, got %T", value)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
