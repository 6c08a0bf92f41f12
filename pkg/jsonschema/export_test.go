package jsonschema_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	js "github.com/invopop/jsonschema"

	"github.com/goliatone/go-modelkit/pkg/jsonschema"
	"github.com/goliatone/go-modelkit/pkg/schema"
	"github.com/goliatone/go-modelkit/pkg/testsupport"
)

func personSchema(t *testing.T) *schema.Schema {
	t.Helper()
	address := schema.Must(schema.NewSchema(
		schema.WithName("address"),
		schema.WithFields(schema.Must(schema.NewText(schema.WithName("street")))),
	))
	person, err := schema.NewSchema(
		schema.WithName("person"),
		schema.WithLabel("Person"),
		schema.WithFields(
			schema.Must(schema.NewText(schema.WithName("name"), schema.WithRequired(true), schema.WithDescription("Full legal name"))),
			schema.Must(schema.NewInteger(schema.WithName("age"), schema.WithDefault(int64(18)))),
			schema.Must(schema.NewUUID(schema.WithName("id"), schema.WithDefaultFunc(schema.UUIDDefault))),
			schema.Must(schema.NewDate(schema.WithName("born"))),
			schema.Must(schema.NewEnum(schema.WithName("role"), schema.WithEnumValues("admin", "user"))),
			schema.Must(schema.NewCollection(
				schema.WithName("tags"),
				schema.WithMinItems(1),
				schema.WithMaxItems(3),
				schema.WithItems(schema.Must(schema.NewText())),
			)),
			schema.Must(schema.NewMapping(
				schema.WithName("scores"),
				schema.WithKeys(schema.Must(schema.NewEnum(schema.WithEnumValues("math", "art")))),
				schema.WithValues(schema.Must(schema.NewFloat())),
			)),
			address,
		),
	)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	return person
}

func TestExport_PropertiesFollowDeclarationOrder(t *testing.T) {
	doc := jsonschema.Export(personSchema(t), jsonschema.WithID("https://example.com/person.json"))

	if doc.Version != js.Version || doc.ID != "https://example.com/person.json" {
		t.Fatalf("root metadata: %q %q", doc.Version, doc.ID)
	}
	if doc.Type != "object" || doc.Title != "Person" {
		t.Fatalf("root: type=%q title=%q", doc.Type, doc.Title)
	}

	var order []string
	for pair := doc.Properties.Oldest(); pair != nil; pair = pair.Next() {
		order = append(order, pair.Key)
	}
	want := []string{"name", "age", "id", "born", "role", "tags", "scores", "address"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name"}, doc.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_Keywords(t *testing.T) {
	data, err := jsonschema.Marshal(personSchema(t), jsonschema.WithDefaults(), jsonschema.WithClosedObjects())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc struct {
		Schema               string                    `json:"$schema"`
		AdditionalProperties any                       `json:"additionalProperties"`
		Properties           map[string]map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, data)
	}
	if doc.Schema != "https://json-schema.org/draft/2020-12/schema" {
		t.Fatalf("dialect: %q", doc.Schema)
	}
	if doc.AdditionalProperties != false {
		t.Fatalf("closed objects: %v", doc.AdditionalProperties)
	}

	props := doc.Properties
	checks := []struct {
		property string
		key      string
		want     any
	}{
		{"name", "type", "string"},
		{"name", "description", "Full legal name"},
		{"age", "type", "integer"},
		{"age", "default", float64(18)},
		{"id", "format", "uuid"},
		{"born", "format", "date"},
		{"role", "enum", []any{"admin", "user"}},
		{"tags", "type", "array"},
		{"tags", "minItems", float64(1)},
		{"tags", "maxItems", float64(3)},
		{"tags", "items", map[string]any{"type": "string"}},
		{"scores", "type", "object"},
		{"scores", "additionalProperties", map[string]any{"type": "number"}},
		{"scores", "propertyNames", map[string]any{"enum": []any{"math", "art"}}},
		{"address", "type", "object"},
	}
	for _, tc := range checks {
		if diff := cmp.Diff(tc.want, props[tc.property][tc.key]); diff != "" {
			t.Errorf("%s.%s mismatch (-want +got):\n%s", tc.property, tc.key, diff)
		}
	}
	if _, ok := props["id"]["default"]; ok {
		t.Errorf("computed defaults must not be exported")
	}
	street := props["address"]["properties"].(map[string]any)["street"].(map[string]any)
	if street["type"] != "string" {
		t.Errorf("nested schema not inlined: %v", street)
	}
}

func TestMarshal_Golden(t *testing.T) {
	catalog := testsupport.LoadCatalog(t, filepath.Join("..", "loader", "testdata", "catalog.json"))
	address := testsupport.MustSchema(t, catalog, "address")

	data, err := jsonschema.Marshal(address,
		jsonschema.WithID("https://example.com/address.json"),
		jsonschema.WithClosedObjects(),
	)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	testsupport.AssertJSONGolden(t, filepath.Join("testdata", "address.golden.json"), data)
}

func TestExport_FromOpenAPIComponent(t *testing.T) {
	schemas := testsupport.MustImportOpenAPI(t, filepath.Join("..", "openapi", "testdata", "pets.yaml"))
	if _, ok := schemas["Error"]; ok {
		t.Fatalf("non object components must be skipped")
	}
	doc := jsonschema.Export(schemas["Pet"])

	if diff := cmp.Diff([]string{"name"}, doc.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	name, _ := doc.Properties.Get("name")
	if name == nil || name.Title != "Pet name" {
		t.Fatalf("name property: %+v", name)
	}
	species, _ := doc.Properties.Get("species")
	if diff := cmp.Diff([]any{"cat", "dog"}, species.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	tags, _ := doc.Properties.Get("tags")
	if tags.Type != "array" || tags.MaxItems == nil || *tags.MaxItems != 5 {
		t.Fatalf("tags property: %+v", tags)
	}
}
