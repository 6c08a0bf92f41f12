package schema_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-modelkit/pkg/schema"
)

func TestLeaves_JSONRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		field schema.Field
		raw   string
	}{
		{name: "text", field: schema.Must(schema.NewText()), raw: `"hello"`},
		{name: "integer", field: schema.Must(schema.NewInteger()), raw: `42`},
		{name: "float", field: schema.Must(schema.NewFloat()), raw: `3.25`},
		{name: "boolean", field: schema.Must(schema.NewBoolean()), raw: `true`},
		{name: "date", field: schema.Must(schema.NewDate()), raw: `"2024-02-29"`},
		{name: "datetime", field: schema.Must(schema.NewDateTime()), raw: `"2024-02-29T10:30:00+01:00"`},
		{name: "enum", field: schema.Must(schema.NewEnum(schema.WithEnumValues("draft", "published"))), raw: `"draft"`},
		{name: "uuid", field: schema.Must(schema.NewUUID()), raw: `"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var decoded any
			if err := json.Unmarshal([]byte(tc.raw), &decoded); err != nil {
				t.Fatalf("decode fixture: %v", err)
			}
			value, err := tc.field.FromJSON(decoded)
			if err != nil {
				t.Fatalf("from json: %v", err)
			}
			back, err := tc.field.ToJSON(value)
			if err != nil {
				t.Fatalf("to json: %v", err)
			}
			encoded, err := json.Marshal(back)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if string(encoded) != tc.raw {
				t.Fatalf("round trip: want %s, got %s", tc.raw, encoded)
			}
		})
	}
}

func TestLeaves_MalformedInputFailsWithParseError(t *testing.T) {
	cases := []struct {
		name  string
		field schema.Field
		raw   any
	}{
		{name: "text", field: schema.Must(schema.NewText()), raw: 12.0},
		{name: "integer", field: schema.Must(schema.NewInteger()), raw: 1.5},
		{name: "integer string", field: schema.Must(schema.NewInteger()), raw: "twelve"},
		{name: "integer above range", field: schema.Must(schema.NewInteger()), raw: 1e20},
		{name: "integer below range", field: schema.Must(schema.NewInteger()), raw: -1e20},
		{name: "integer at 2^63", field: schema.Must(schema.NewInteger()), raw: float64(math.MaxInt64)},
		{name: "integer nan", field: schema.Must(schema.NewInteger()), raw: math.NaN()},
		{name: "integer inf", field: schema.Must(schema.NewInteger()), raw: math.Inf(1)},
		{name: "integer uint overflow", field: schema.Must(schema.NewInteger()), raw: uint64(math.MaxUint64)},
		{name: "float", field: schema.Must(schema.NewFloat()), raw: true},
		{name: "boolean", field: schema.Must(schema.NewBoolean()), raw: "perhaps"},
		{name: "date", field: schema.Must(schema.NewDate()), raw: "29/02/2024"},
		{name: "datetime", field: schema.Must(schema.NewDateTime()), raw: "yesterday"},
		{name: "enum", field: schema.Must(schema.NewEnum(schema.WithEnumValues("a"))), raw: "b"},
		{name: "uuid", field: schema.Must(schema.NewUUID()), raw: "not-a-uuid"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.field.FromJSON(tc.raw)
			var parseErr *schema.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if parseErr.Field != tc.field {
				t.Fatalf("error names %v, want %v", parseErr.Field, tc.field)
			}
		})
	}
}

func TestNumbers_AcceptSameGoTypes(t *testing.T) {
	integer := schema.Must(schema.NewInteger())
	float := schema.Must(schema.NewFloat())

	for _, raw := range []any{
		int(5), int8(5), int16(5), int32(5), int64(5),
		uint(5), uint8(5), uint16(5), uint32(5), uint64(5),
		float32(5), float64(5), json.Number("5"), "5",
	} {
		got, err := integer.Normalize(raw)
		if err != nil || got != int64(5) {
			t.Errorf("integer %T: got %v, %v", raw, got, err)
		}
		got, err = float.Normalize(raw)
		if err != nil || got != float64(5) {
			t.Errorf("float %T: got %v, %v", raw, got, err)
		}
	}

	if got, err := integer.FromJSON(float64(-1 << 63)); err != nil || got != int64(math.MinInt64) {
		t.Fatalf("min int64: got %v, %v", got, err)
	}
}

func TestDate_TimestampKeepsCalendarDay(t *testing.T) {
	field := schema.Must(schema.NewDate())
	got, err := field.FromJSON("2024-01-01T23:00:00-05:00")
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !got.(time.Time).Equal(want) || got.(time.Time).Location() != time.UTC {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestText_SanitizeHint(t *testing.T) {
	field := schema.Must(schema.NewText(schema.WithName("bio"), schema.WithHint(schema.HintSanitize, true)))

	got, err := field.Normalize(`<script>alert(1)</script><b>Hi</b>`)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got != "Hi" {
		t.Fatalf("expected markup to be stripped, got %q", got)
	}

	copied := schema.Must(field.Copy())
	if got, _ := copied.Normalize("<i>x</i>"); got != "x" {
		t.Fatalf("copies must keep the sanitizer, got %q", got)
	}

	if _, err := schema.NewText(schema.WithHint(schema.HintSanitize, "nonsense")); err == nil {
		t.Fatalf("expected an error for an unknown policy")
	}
}

func TestEnum_Labels(t *testing.T) {
	status := schema.Must(schema.NewEnum(schema.WithEnum(
		schema.EnumEntry{Value: "in_review", Label: "Waiting for review"},
		schema.EnumEntry{Value: "draft_copy"},
	)))

	if got := status.ValueLabel("in_review", schema.LabelOptions{}); got != "Waiting for review" {
		t.Fatalf("got %q", got)
	}
	if got := status.ValueLabel("draft_copy", schema.LabelOptions{}); got != "Draft copy" {
		t.Fatalf("got %q", got)
	}
	copied := schema.Must(schema.CopyAs(status))
	if len(copied.Entries()) != 2 {
		t.Fatalf("entries not copied: %v", copied.Entries())
	}
}

func TestUUID_DefaultProducer(t *testing.T) {
	field := schema.Must(schema.NewUUID(schema.WithDefaultFunc(schema.UUIDDefault)))
	first, ok := field.ProduceDefaultValue(nil).(uuid.UUID)
	if !ok || first == uuid.Nil {
		t.Fatalf("expected a random uuid, got %v", first)
	}
	if second := field.ProduceDefaultValue(nil); second == first {
		t.Fatalf("expected a new uuid per call")
	}
}

func TestReference_ValuesAreFields(t *testing.T) {
	city := schema.Must(schema.NewText(schema.WithName("city")))
	address := schema.Must(schema.NewSchema(schema.WithName("address"), schema.WithFields(city)))
	person := schema.Must(schema.NewSchema(schema.WithName("person"), schema.WithFields(address)))
	sortBy := schema.Must(schema.NewReference(schema.WithName("sortBy"), schema.WithScope(person)))

	value, err := sortBy.FromJSON("address.city")
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if value != city {
		t.Fatalf("expected %s, got %v", city, value)
	}
	if got := sortBy.ValueID(value); got != "person.address.city" {
		t.Fatalf("value id: %q", got)
	}
	if got := sortBy.ValueLabel(value, schema.LabelOptions{}); got != "Person / Address / City" {
		t.Fatalf("value label: %q", got)
	}
	if got, _ := sortBy.ToJSON(value); got != "address.city" {
		t.Fatalf("to json: %v", got)
	}

	var parseErr *schema.ParseError
	if _, err := sortBy.FromJSON("address.zip"); !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
