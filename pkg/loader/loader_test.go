package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelkit/pkg/hints"
	"github.com/goliatone/go-modelkit/pkg/loader"
	"github.com/goliatone/go-modelkit/pkg/schema"
)

func names(s *schema.Schema) []string {
	var out []string
	for field := range s.Members() {
		out = append(out, field.Name())
	}
	return out
}

func newRegistry() (*hints.Registry, *hints.Hint) {
	reg := hints.NewRegistry(hints.WithParent(hints.Default))
	return reg, reg.Declare("widget")
}

func TestLoadFile_YAML(t *testing.T) {
	reg, widget := newRegistry()
	catalog, err := loader.LoadFile(filepath.Join("testdata", "people.yaml"), loader.WithRegistry(reg))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"person", "employee", "contactCard"}, catalog.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	person, _ := catalog.Schema("person")
	if diff := cmp.Diff([]string{"name", "birthDate", "email", "tags", "scores"}, names(person)); diff != "" {
		t.Fatalf("person members mismatch (-want +got):\n%s", diff)
	}
	if !person.Grouped() || person.Group("basics").Len() != 2 || person.Group("contact").Len() != 1 {
		t.Fatalf("groups not populated")
	}
	if got := person.Group("basics").Label(); got != "Basic data" {
		t.Fatalf("group label: %q", got)
	}
	if value, _ := person.Field("email").Hint(widget); value != "email" {
		t.Fatalf("hint not applied: %v", value)
	}
	tags := person.Field("tags").(*schema.Collection)
	if upper, _ := tags.MaxItems(); upper != 3 || tags.Items().Kind() != schema.KindText {
		t.Fatalf("collection not built: max=%d items=%v", upper, tags.Items())
	}
	scores := person.Field("scores").(*schema.Mapping)
	if scores.Values().Kind() != schema.KindFloat {
		t.Fatalf("mapping values not built: %v", scores.Values())
	}

	employee, _ := catalog.Schema("employee")
	if employee.Base() != person || employee.Field("name") != person.Field("name") {
		t.Fatalf("employee must extend person")
	}
	role := employee.Field("role").(*schema.Enum)
	if got := role.ValueLabel("manager", schema.LabelOptions{}); got != "Team manager" {
		t.Fatalf("enum label: %q", got)
	}
	if ref := employee.Field("sortBy").(*schema.Reference); ref.Scope() != person {
		t.Fatalf("reference scope not resolved")
	}

	card, _ := catalog.Schema("contactCard")
	if diff := cmp.Diff([]string{"name", "email"}, names(card)); diff != "" {
		t.Fatalf("card members mismatch (-want +got):\n%s", diff)
	}
	if card.Field("name").Required() {
		t.Fatalf("allFields override not applied")
	}
	if got := card.Field("email").Label(); got != "E-mail address" {
		t.Fatalf("field override: %q", got)
	}
	if card.Field("name") == person.Field("name") {
		t.Fatalf("copied schema must not share fields")
	}
}

func TestLoadFS_MergesFilesInOrder(t *testing.T) {
	reg, _ := newRegistry()
	catalog, err := loader.LoadFS(os.DirFS("testdata"), loader.WithRegistry(reg))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if diff := cmp.Diff([]string{"address", "person", "employee", "contactCard"}, catalog.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got := catalog.Source("address"); got != "catalog.json" {
		t.Fatalf("source: %q", got)
	}
	address, _ := catalog.Schema("address")
	if got := address.Field("city").DataPath(); got != "location.city" {
		t.Fatalf("data path: %q", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		is   error
		as   any
	}{
		{name: "empty", doc: "  ", is: loader.ErrEmptyDocument},
		{name: "garbage", doc: "{schemas: [", is: loader.ErrInvalidDocument},
		{name: "unknown hint", doc: `{"schemas":[{"name":"a","fields":[{"name":"x","bogus":1}]}]}`, as: new(*hints.UnknownHintError)},
		{name: "unknown kind", doc: `{"schemas":[{"name":"a","fields":[{"name":"x","kind":"tuple"}]}]}`, is: schema.ErrUnknownKind},
		{name: "missing group", doc: `{"schemas":[{"name":"a","groups":["g"],"fields":[{"name":"x","group":"h"}]}]}`, as: new(*schema.GroupNotFoundError)},
		{name: "duplicate field", doc: `{"schemas":[{"name":"a","fields":[{"name":"x"},{"name":"x"}]}]}`, as: new(*schema.DuplicateFieldError)},
		{name: "copy of unknown name", doc: `{"schemas":[{"name":"a","fields":[{"name":"x"}]},{"name":"b","copy":"a","only":["y"]}]}`, as: new(*schema.FieldNotFoundError)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loader.Load([]byte(tc.doc), tc.name+".json")
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("expected %v, got %v", tc.is, err)
			}
			if tc.as != nil && !errors.As(err, tc.as) {
				t.Fatalf("expected %T, got %v", tc.as, err)
			}
		})
	}

	for _, doc := range []string{
		`{"schemas":[{"fields":[]}]}`,
		`{"schemas":[{"name":"b","extends":"a"}]}`,
		`{"schemas":[{"name":"a"},{"name":"a"}]}`,
	} {
		if _, err := loader.Load([]byte(doc), "doc.json"); err == nil {
			t.Fatalf("expected an error for %s", doc)
		}
	}
}

func TestLoadFS_Nil(t *testing.T) {
	catalog, err := loader.LoadFS(nil)
	if err != nil || catalog.Len() != 0 {
		t.Fatalf("expected an empty catalog, got %v %v", catalog, err)
	}

	catalog, err = loader.LoadFS(fstest.MapFS{"notes.txt": {Data: []byte("skip me")}})
	if err != nil || catalog.Len() != 0 {
		t.Fatalf("non definition files must be skipped, got %v", err)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defs.json")
	write := func(doc string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write(`{"schemas":[{"name":"first"}]}`)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	loaded := make(chan *loader.Catalog, 8)
	done := make(chan error, 1)
	go func() {
		done <- loader.Watch(ctx, path, func(c *loader.Catalog) { loaded <- c })
	}()

	initial := <-loaded
	if _, ok := initial.Schema("first"); !ok {
		t.Fatalf("initial catalog missing schema")
	}

	// Broken documents are skipped; the following valid write is picked up.
	write(`{"schemas": [`)
	write(`{"schemas":[{"name":"second"}]}`)

	for {
		select {
		case c := <-loaded:
			if _, ok := c.Schema("second"); ok {
				cancel()
				if err := <-done; err != nil {
					t.Fatalf("watch: %v", err)
				}
				return
			}
		case <-ctx.Done():
			t.Fatalf("timed out waiting for reload")
		}
	}
}
