package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	peopleFile  = filepath.Join("..", "..", "pkg", "loader", "testdata", "people.yaml")
	catalogFile = filepath.Join("..", "..", "pkg", "loader", "testdata", "catalog.json")
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(defaultConfig())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", peopleFile, "--hint", "widget")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, line := range []string{
		`  name  text required group=basics  "Name"`,
		`  tags  collection max=3  "Tags"`,
		`    [items]  text  "Tag"`,
		`  role  enum values=engineer,manager  "Role"`,
		`  sortBy  reference scope=person  "Sort by"`,
		`  email  text group=contact  "E-mail address"`,
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("missing line %q in:\n%s", line, out)
		}
	}

	if _, err := run(t, "inspect", peopleFile); err == nil {
		t.Fatalf("undeclared hints must fail the load")
	}
}

func TestDerive(t *testing.T) {
	out, err := run(t, "derive", peopleFile, "--hint", "widget", "--schema", "person", "--fields", "email,name", "--name", "card")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "card  schema") ||
		!strings.HasPrefix(lines[1], "  email  ") || !strings.HasPrefix(lines[2], "  name  ") {
		t.Fatalf("unexpected derived tree:\n%s", out)
	}

	if _, err := run(t, "derive", peopleFile, "--hint", "widget", "--schema", "nobody"); err == nil {
		t.Fatalf("expected an error for an unknown schema")
	}
}

func TestJSONSchema(t *testing.T) {
	out, err := run(t, "jsonschema", catalogFile, "--schema", "address", "--closed")
	if err != nil {
		t.Fatalf("jsonschema: %v", err)
	}
	var doc struct {
		Required             []string `json:"required"`
		AdditionalProperties bool     `json:"additionalProperties"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if diff := cmp.Diff([]string{"street"}, doc.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	valid := writeFile(t, "valid.json", `{"street": "Rue de Rivoli", "location": {"city": "Paris"}}`)
	out, err := run(t, "validate", catalogFile, valid, "--schema", "address")
	if err != nil || strings.TrimSpace(out) != "ok" {
		t.Fatalf("expected ok, got %q %v", out, err)
	}

	invalid := writeFile(t, "invalid.json", `{"location": {"city": "Paris"}}`)
	out, err = run(t, "validate", catalogFile, invalid, "--schema", "address")
	if err == nil {
		t.Fatalf("expected a validation failure")
	}
	if !strings.HasPrefix(out, "street: ") {
		t.Fatalf("expected an issue for street, got %q", out)
	}
}

func TestOpenAPI(t *testing.T) {
	spec := writeFile(t, "api.yaml", `
openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name: {type: string, x-modelkit-bogus: 1}
`)
	out, err := run(t, "openapi", spec)
	if err != nil {
		t.Fatalf("openapi: %v", err)
	}
	if !strings.Contains(out, `  name  text required  "Name"`) {
		t.Fatalf("unexpected tree:\n%s", out)
	}

	if _, err := run(t, "openapi", spec, "--strict-hints"); err == nil {
		t.Fatalf("strict mode must reject unknown hints")
	}
}

func TestConfig(t *testing.T) {
	t.Setenv("MODELKIT_LOG_LEVEL", "debug")
	t.Setenv("MODELKIT_STRICT_HINTS", "true")
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := Config{LogLevel: "debug", LogFormat: "console", StrictHints: true}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	if _, err := newLogger(Config{LogFormat: "xml"}, io.Discard); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
	if _, err := newLogger(Config{LogLevel: "loud"}, io.Discard); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}
