// Package openapi imports the component schemas of an OpenAPI 3 document as
// schema.Schema values.
//
// Objects become schemas, arrays become collections and objects whose only
// shape is additionalProperties become mappings with text keys. The
// x-modelkit-group extension assigns a field to a group; any other
// x-modelkit-<name> extension is looked up as a hint.
package openapi
