// Package loader builds schemas from declarative JSON or YAML documents.
//
// A document lists schemas in declaration order:
//
//	schemas:
//	  - name: person
//	    groups: [{name: basics, label: Basics}]
//	    fields:
//	      - {name: name, kind: text, required: true, group: basics}
//	      - {name: tags, kind: collection, maxItems: 3, items: {kind: text}}
//	  - name: employee
//	    extends: person
//	    fields:
//	      - {name: role, kind: enum, enum: [engineer, manager]}
//	  - name: contact
//	    copy: person
//	    only: [name]
//	    allFields: {required: false}
//
// Structural keys (kind, fields, groups, extends, items, keys, values, enum,
// scope, copy, only, allFields, fieldOverrides) shape the tree. Every other
// key is a field parameter or a hint name, resolved through
// schema.ParamsFromMap. A schema can only extend, copy or reference schemas
// declared before it.
package loader
