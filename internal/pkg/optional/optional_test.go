package optional

import (
	"encoding/json"
	"testing"
)

type patch struct {
	Description Field[string]   `json:"description"`
	Tags        Field[[]string] `json:"tags"`
}

func TestFieldDistinguishesAbsentNullAndValue(t *testing.T) {
	var p patch
	if err := json.Unmarshal([]byte(`{"description": null}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !p.Description.Present() || !p.Description.IsNull() {
		t.Errorf("expected description to be present and null")
	}
	if p.Tags.Present() {
		t.Errorf("expected tags to be absent")
	}
	if p.Description.Ptr() != nil {
		t.Errorf("expected nil pointer for null field")
	}

	p = patch{}
	if err := json.Unmarshal([]byte(`{"tags": ["a", "b"], "description": "x"}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tags, ok := p.Tags.Value()
	if !ok || len(tags) != 2 || tags[1] != "b" {
		t.Errorf("unexpected tags: %v (%v)", tags, ok)
	}
	if d := p.Description.Ptr(); d == nil || *d != "x" {
		t.Errorf("unexpected description: %v", d)
	}
}

func TestFieldRejectsWrongType(t *testing.T) {
	var p patch
	if err := json.Unmarshal([]byte(`{"tags": "not-an-array"}`), &p); err == nil {
		t.Fatal("expected error for non-array tags")
	}
}

func TestFieldConstructors(t *testing.T) {
	if v, ok := Of(3).Value(); !ok || v != 3 {
		t.Errorf("Of: got %v %v", v, ok)
	}
	if f := Null[int](); !f.Present() || !f.IsNull() {
		t.Errorf("Null: expected present null field")
	}
	var absent Field[int]
	if absent.Present() || absent.IsNull() {
		t.Errorf("zero value must be absent")
	}
}
