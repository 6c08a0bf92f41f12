package schema

import (
	"iter"
	"slices"
	"strings"

	"github.com/goliatone/go-modelkit/internal/labels"
)

// Group is a named, ordered bucket of schema fields used to organise them
// for display. Members are added through the owning Schema.
type Group struct {
	name   string
	label  string
	schema *Schema
	fields []Field
}

// GroupOption configures a Group.
type GroupOption func(*Group)

func GroupLabel(label string) GroupOption {
	return func(g *Group) {
		g.label = label
	}
}

func NewGroup(name string, options ...GroupOption) *Group {
	g := &Group{name: strings.TrimSpace(name)}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

func (g *Group) Name() string {
	if g == nil {
		return ""
	}
	return g.name
}

// Label returns the explicit label or one derived from the name.
func (g *Group) Label() string {
	if g == nil {
		return ""
	}
	if g.label != "" {
		return g.label
	}
	return labels.FromName(g.name)
}

// Schema returns the schema the group is attached to, nil when detached.
func (g *Group) Schema() *Schema {
	if g == nil {
		return nil
	}
	return g.schema
}

func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.fields)
}

// Fields iterates over the group members in insertion order.
func (g *Group) Fields() iter.Seq[Field] {
	var snapshot []Field
	if g != nil {
		snapshot = slices.Clone(g.fields)
	}
	return slices.Values(snapshot)
}

// AddField binds the field to the group and appends it. The owning schema
// checks names and ownership before calling it.
func (g *Group) AddField(field Field) error {
	if err := field.core().setGroup(g); err != nil {
		return err
	}
	g.fields = append(g.fields, field)
	return nil
}

// Copy returns a detached, empty group with the same name and label. Members
// are re-added by the schema that adopts the copy.
func (g *Group) Copy(options ...GroupOption) *Group {
	out := &Group{name: g.name, label: g.label}
	for _, opt := range options {
		if opt != nil {
			opt(out)
		}
	}
	return out
}
