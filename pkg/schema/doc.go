// Package schema describes structured records as a tree of fields.
//
// Every node implements Field. Composite kinds (Schema, Collection and
// Mapping) claim the fields they hold, and a field can only be claimed once:
// ownership is a tree, so a field's qualified name ("person.address.street")
// is fixed once it has been added to its owner.
//
// Fields are built from a Params record, usually assembled with functional
// options:
//
//	person, err := schema.NewSchema(
//		schema.WithName("person"),
//		schema.WithGroups(schema.NewGroup("basics")),
//		schema.WithFields(
//			schema.Must(schema.NewText(schema.WithName("name"), schema.WithRequired(true), schema.WithGroup("basics"))),
//			schema.Must(schema.NewInteger(schema.WithName("age"))),
//		),
//	)
//
// Copying never shares nested fields. Copy asks the field for its
// CopyParameters, merges the caller's overrides on top and builds a new,
// detached instance of the same kind. A Schema copy can narrow the field set
// (WithFieldNames), apply overrides to every reproduced field
// (WithAllFields) or to a single one (WithFieldOverrides), and accepts
// pre-built detached fields which are reused without cloning.
//
// Schemas can inherit from a base schema. Lookups walk from the most derived
// schema to its bases and the most derived match wins.
package schema
