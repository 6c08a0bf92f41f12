package labels

import "testing"

func TestFromName(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"name":           "Name",
		"firstName":      "First name",
		"first_name":     "First name",
		"created-at":     "Created at",
		"address.street": "Address street",
		"HTTPServer":     "HTTP server",
		"userID":         "User ID",
		"line2":          "Line 2",
	}
	for input, want := range cases {
		if got := FromName(input); got != want {
			t.Errorf("FromName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join("Person", "", " Address ", "Street"); got != "Person / Address / Street" {
		t.Fatalf("unexpected join: %q", got)
	}
}
