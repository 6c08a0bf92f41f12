package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-modelkit/pkg/schema"
)

var slotNames = map[schema.Role]string{
	schema.RoleCollectionItems: "[items]",
	schema.RoleMapKey:          "[keys]",
	schema.RoleMapValue:        "[values]",
}

// writeTree prints field and everything nested in it, one line per field.
func writeTree(w io.Writer, field schema.Field, depth int) {
	name := field.Name()
	if slot, ok := slotNames[field.Role()]; ok {
		name = slot
	}

	attrs := []string{string(field.Kind())}
	if field.Required() {
		attrs = append(attrs, "required")
	}
	if group := field.GroupName(); group != "" {
		attrs = append(attrs, "group="+group)
	}
	if path := field.DataPath(); path != "" {
		attrs = append(attrs, "path="+path)
	}

	switch f := field.(type) {
	case *schema.Schema:
		if base := f.Base(); base != nil {
			attrs = append(attrs, "extends="+base.Name())
		}
		var groups []string
		for group := range f.Groups() {
			groups = append(groups, group.Name())
		}
		if len(groups) > 0 {
			attrs = append(attrs, "groups="+strings.Join(groups, ","))
		}
	case *schema.Collection:
		if lower, ok := f.MinItems(); ok {
			attrs = append(attrs, fmt.Sprintf("min=%d", lower))
		}
		if upper, ok := f.MaxItems(); ok {
			attrs = append(attrs, fmt.Sprintf("max=%d", upper))
		}
	case *schema.Enum:
		attrs = append(attrs, "values="+strings.Join(f.Values(), ","))
	case *schema.Reference:
		if scope := f.Scope(); scope != nil {
			attrs = append(attrs, "scope="+scope.Name())
		}
	}

	fmt.Fprintf(w, "%s%s  %s  %q\n", strings.Repeat("  ", depth), name, strings.Join(attrs, " "), field.DisplayLabel())

	switch f := field.(type) {
	case *schema.Schema:
		for member := range f.Members() {
			writeTree(w, member, depth+1)
		}
	case *schema.Collection:
		if items := f.Items(); items != nil {
			writeTree(w, items, depth+1)
		}
	case *schema.Mapping:
		if keys := f.Keys(); keys != nil {
			writeTree(w, keys, depth+1)
		}
		if values := f.Values(); values != nil {
			writeTree(w, values, depth+1)
		}
	}
}
