// Package model binds a schema to runtime values.
//
// A Class wraps the schema describing a record type and builds Instances,
// which hold one value per schema member. Values are normalized by their
// field on Set, defaults are produced lazily (once) on Get, and records can
// be decoded from JSON objects, honouring each field's data path.
//
// Validate checks required members and collection bounds, recursing into
// nested schemas, collections and mappings. It reports every problem found
// as a ValidationErrors value.
package model
