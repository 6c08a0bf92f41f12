package openapi_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelkit/pkg/hints"
	"github.com/goliatone/go-modelkit/pkg/openapi"
	"github.com/goliatone/go-modelkit/pkg/schema"
)

const document = `
openapi: 3.0.3
info:
  title: People
  version: 1.0.0
paths: {}
components:
  schemas:
    Address:
      type: object
      properties:
        street: {type: string}
        city: {type: string}
    Person:
      type: object
      title: Person record
      required: [name]
      properties:
        name:
          type: string
          title: Full name
        born: {type: string, format: date}
        seen: {type: string, format: date-time}
        id: {type: string, format: uuid}
        age: {type: integer, default: 18}
        score: {type: number}
        active: {type: boolean}
        role:
          type: string
          enum: [admin, user]
        tags:
          type: array
          minItems: 1
          maxItems: 3
          items: {type: string}
        scores:
          type: object
          additionalProperties: {type: number}
        address:
          $ref: '#/components/schemas/Address'
        nickname:
          type: string
          x-modelkit-group: extra
          x-modelkit-widget: textarea
    Status:
      type: string
`

func memberNames(s *schema.Schema) []string {
	var out []string
	for field := range s.Members() {
		out = append(out, field.Name())
	}
	return out
}

func TestImport_ConvertsComponents(t *testing.T) {
	reg := hints.NewRegistry(hints.WithParent(hints.Default))
	widget := reg.Declare("widget")

	schemas, err := openapi.Import(context.Background(), []byte(document), openapi.WithRegistry(reg))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, ok := schemas["Status"]; ok {
		t.Fatalf("non object components must be skipped")
	}

	person := schemas["Person"]
	if person == nil {
		t.Fatalf("Person not imported")
	}
	if got := person.Label(); got != "Person record" {
		t.Fatalf("schema label: %q", got)
	}

	want := []string{"active", "address", "age", "born", "id", "name", "nickname", "role", "score", "scores", "seen", "tags"}
	if diff := cmp.Diff(want, memberNames(person)); diff != "" {
		t.Fatalf("members mismatch (-want +got):\n%s", diff)
	}

	kinds := map[string]schema.Kind{}
	for field := range person.Members() {
		kinds[field.Name()] = field.Kind()
	}
	wantKinds := map[string]schema.Kind{
		"active":   schema.KindBoolean,
		"address":  schema.KindSchema,
		"age":      schema.KindInteger,
		"born":     schema.KindDate,
		"id":       schema.KindUUID,
		"name":     schema.KindText,
		"nickname": schema.KindText,
		"role":     schema.KindEnum,
		"score":    schema.KindFloat,
		"scores":   schema.KindMapping,
		"seen":     schema.KindDateTime,
		"tags":     schema.KindCollection,
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	name := person.Field("name")
	if !name.Required() || name.Label() != "Full name" {
		t.Fatalf("name attributes not mapped: required=%v label=%q", name.Required(), name.Label())
	}
	if person.Field("born").Required() {
		t.Fatalf("only listed properties are required")
	}
	if got := person.Field("age").ProduceDefaultValue(nil); fmt.Sprint(got) != "18" {
		t.Fatalf("default: %#v", got)
	}

	tags := person.Field("tags").(*schema.Collection)
	lower, _ := tags.MinItems()
	upper, _ := tags.MaxItems()
	if lower != 1 || upper != 3 || tags.Items().Kind() != schema.KindText {
		t.Fatalf("collection bounds: %d..%d items=%v", lower, upper, tags.Items())
	}
	if values := person.Field("scores").(*schema.Mapping).Values(); values.Kind() != schema.KindFloat {
		t.Fatalf("mapping values: %v", values)
	}
	if diff := cmp.Diff([]string{"admin", "user"}, person.Field("role").(*schema.Enum).Values()); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	address := person.Field("address").(*schema.Schema)
	if diff := cmp.Diff([]string{"city", "street"}, memberNames(address)); diff != "" {
		t.Fatalf("nested members mismatch (-want +got):\n%s", diff)
	}
	if address == schemas["Address"] {
		t.Fatalf("nested schema must be a separate instance")
	}

	nickname := person.Field("nickname")
	if !person.Grouped() || nickname.AssignedGroup() != person.Group("extra") {
		t.Fatalf("group extension not applied")
	}
	if value, _ := nickname.Hint(widget); value != "textarea" {
		t.Fatalf("hint extension: %v", value)
	}
}

func TestImport_UnknownHints(t *testing.T) {
	doc := `{"openapi":"3.0.3","info":{"title":"t","version":"1"},"paths":{},
	"components":{"schemas":{"A":{"type":"object","properties":{"x":{"type":"string","x-modelkit-bogus":true}}}}}}`

	schemas, err := openapi.Import(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("lenient import: %v", err)
	}
	if schemas["A"].Field("x") == nil {
		t.Fatalf("field with unknown hint must still be imported")
	}

	_, err = openapi.Import(context.Background(), []byte(doc), openapi.WithStrictHints(true))
	var unknown *hints.UnknownHintError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownHintError, got %v", err)
	}
}

func TestImport_RejectsRecursiveReferences(t *testing.T) {
	doc := `
openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Node:
      type: object
      properties:
        children:
          type: array
          items:
            $ref: '#/components/schemas/Node'
`
	_, err := openapi.Import(context.Background(), []byte(doc))
	if !errors.Is(err, openapi.ErrRecursiveReference) {
		t.Fatalf("expected ErrRecursiveReference, got %v", err)
	}
}

func TestImport_Errors(t *testing.T) {
	if _, err := openapi.Import(context.Background(), []byte("  ")); !errors.Is(err, openapi.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := openapi.Import(context.Background(), []byte("openapi: [")); err == nil {
		t.Fatalf("expected a load error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := openapi.Import(ctx, []byte(document)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, err := openapi.ImportFS(context.Background(), nil, "api.yaml"); err == nil {
		t.Fatalf("expected an error for a nil filesystem")
	}
}

func TestImportFS(t *testing.T) {
	fsys := fstest.MapFS{"api.yaml": {Data: []byte(document)}}
	schemas, err := openapi.ImportFS(context.Background(), fsys, "api.yaml", openapi.WithRegistry(hints.NewRegistry(hints.WithParent(hints.Default))))
	if err != nil {
		t.Fatalf("import fs: %v", err)
	}
	if len(schemas) != 2 {
		t.Fatalf("expected two schemas, got %d", len(schemas))
	}
}
