package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	ID              string   `json:"id"`
	DurationMinutes int      `json:"durationMinutes"`
	Tools           []string `json:"tools"`
	Fixed           *bool    `json:"isFixed"`
}

func TestWriteEDN(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample{ID: "i1", DurationMinutes: 15, Tools: []string{"post-it"}}, "edn", false); err != nil {
		t.Fatal(err)
	}
	want := `{:duration-minutes 15 :id "i1" :is-fixed nil :tools ["post-it"]}` + "\n"
	if buf.String() != want {
		t.Fatalf("edn = %q", buf.String())
	}
}

func TestWriteEDN_PrettyEmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"items": []any{}, "meta": map[string]any{}}, true); err != nil {
		t.Fatal(err)
	}
	want := "{\n  :items []\n  :meta {}\n}\n"
	if buf.String() != want {
		t.Fatalf("edn = %q", buf.String())
	}
}

func TestWriteYAMLAndJSON(t *testing.T) {
	var y, j bytes.Buffer
	v := sample{ID: "i1", DurationMinutes: 30}
	if err := Write(&y, v, "yaml", false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(y.String(), "durationMinutes: 30") {
		t.Fatalf("yaml = %q", y.String())
	}
	if err := Write(&j, v, "", false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(j.String(), `{"id":"i1"`) {
		t.Fatalf("json = %q", j.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "xml", false); err == nil {
		t.Fatal("expected error")
	}
}

func TestKeyword(t *testing.T) {
	for in, want := range map[string]string{"dateOffset": "date-offset", "id": "id", "last_workshop": "last-workshop"} {
		if got := Keyword(in); got != want {
			t.Fatalf("Keyword(%q) = %q", in, got)
		}
	}
}
