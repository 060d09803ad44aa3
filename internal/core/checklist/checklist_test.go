package checklist

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/example/resale/internal/core/apperr"
)

func TestParse_PreservesOrder(t *testing.T) {
	c, err := Parse(`{"working": true, "clean": false, "complete": null, "boxed": true}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantKeys := []string{"working", "clean", "complete", "boxed"}
	if !reflect.DeepEqual(c.Keys(), wantKeys) {
		t.Errorf("Keys() = %v, want %v", c.Keys(), wantKeys)
	}
	if c.TrueCount() != 2 {
		t.Errorf("TrueCount() = %d, want 2", c.TrueCount())
	}
	if c.Resolved() {
		t.Error("Resolved() = true, want false with a null entry")
	}
	if got := c.UnsetKeys(); !reflect.DeepEqual(got, []string{"complete"}) {
		t.Errorf("UnsetKeys() = %v, want [complete]", got)
	}

	// Marshal keeps the author's order, which a plain Go map would lose.
	if got, want := c.String(), `{"working":true,"clean":false,"complete":null,"boxed":true}`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"string value", `{"clean": "yes"}`},
		{"numeric value", `{"clean": 1}`},
		{"nested object", `{"clean": {"v": true}}`},
		{"array", `[true, false]`},
		{"duplicate key", `{"clean": true, "clean": false}`},
		{"empty key", `{"": true}`},
		{"truncated", `{"clean": true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("Parse(%s) error = %v, want validation error", tt.input, err)
			}
		})
	}
}

func TestParse_EmptyInputs(t *testing.T) {
	for _, input := range []string{"", "null", "{}"} {
		c, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", input, err)
		}
		if c.Len() != 0 {
			t.Errorf("Parse(%q).Len() = %d, want 0", input, c.Len())
		}
	}
}

func TestChecklist_InStruct(t *testing.T) {
	type payload struct {
		Checklist Checklist `json:"checklist_json"`
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"checklist_json":{"b":true,"a":false}}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `{"checklist_json":{"b":true,"a":false}}` {
		t.Errorf("Marshal() = %s", out)
	}
}

func TestSameKeys(t *testing.T) {
	a := Of("clean", true, "working", false)

	tests := []struct {
		name  string
		other Checklist
		want  bool
	}{
		{"same keys different order and values", Of("working", true, "clean", false), true},
		{"missing key", Of("clean", true), false},
		{"extra key", Of("clean", true, "working", true, "boxed", true), false},
		{"renamed key", Of("clean", true, "works", true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.SameKeys(tt.other); got != tt.want {
				t.Errorf("SameKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	var c Checklist
	c.Set("clean", false)
	c.Set("working", true)
	c.Set("clean", true)

	if !reflect.DeepEqual(c.Keys(), []string{"clean", "working"}) {
		t.Errorf("Keys() = %v", c.Keys())
	}
	if !reflect.DeepEqual(c.TrueKeys(), []string{"clean", "working"}) {
		t.Errorf("TrueKeys() = %v", c.TrueKeys())
	}
}
