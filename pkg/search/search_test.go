package search_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelkit/pkg/search"
)

func TestNormalizeLatin(t *testing.T) {
	cases := map[string]string{
		"  Àlex Peña ": "alex pena",
		"ÉCOLE":        "ecole",
		"":             "",
		"plain":        "plain",
	}
	for input, want := range cases {
		if got := search.NormalizeLatin(input); got != want {
			t.Errorf("NormalizeLatin(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSplitWords(t *testing.T) {
	got := search.SplitWords("  red \t green\nblue ")
	if diff := cmp.Diff([]string{"red", "green", "blue"}, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestPrepare_RequiresEveryToken(t *testing.T) {
	match := search.Prepare("jose gar")

	cases := []struct {
		text string
		want bool
	}{
		{text: "José García", want: true},
		{text: "Garbage José", want: true},
		{text: "José", want: false},
		{text: "", want: false},
	}
	for _, tc := range cases {
		if got := match(tc.text); got != tc.want {
			t.Errorf("match(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}

	if !search.Prepare("   ")("anything") {
		t.Fatalf("empty query must match everything")
	}
}

func TestPrepare_CustomOptions(t *testing.T) {
	exact := search.Prepare("Ana", search.WithNormalizer(nil))
	if exact("ana") || !exact("Ana") {
		t.Fatalf("disabling normalization must make matching case sensitive")
	}

	comma := search.Prepare("a,b", search.WithTokenizer(func(text string) []string {
		return strings.Split(text, ",")
	}))
	if !comma("b then a") || comma("a only") {
		t.Fatalf("custom tokenizer not honoured")
	}
}
