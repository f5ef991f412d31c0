package validation

import (
	"testing"

	"github.com/skillsenselab/prepkit/errors"
)

func TestValidatorNoErrors(t *testing.T) {
	v := New().
		Required("name", "value").
		Range("count", 5, 1, 20)

	if v.HasErrors() {
		t.Fatalf("unexpected errors: %v", v.Errors())
	}
	if err := v.Validate(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestValidatorCollectsMultipleErrors(t *testing.T) {
	v := New().
		Required("name", "  ").
		Range("count", 42, 1, 20)

	if len(v.Errors()) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(v.Errors()))
	}

	err := v.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.HasKind(err, errors.KindInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		value  int
		wantOK bool
	}{
		{0, false},
		{1, true},
		{20, true},
		{21, false},
	}

	for _, tt := range tests {
		v := New().Range("count", tt.value, 1, 20)
		if v.HasErrors() == tt.wantOK {
			t.Errorf("Range(%d): hasErrors=%v, want ok=%v", tt.value, v.HasErrors(), tt.wantOK)
		}
	}
}

func TestRequiredID(t *testing.T) {
	if v := New().RequiredID("id", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"); v.HasErrors() {
		t.Errorf("valid UUID rejected: %v", v.Errors())
	}
	if v := New().RequiredID("id", "not-a-uuid"); !v.HasErrors() {
		t.Error("invalid UUID accepted")
	}
	if v := New().RequiredID("id", "00000000-0000-0000-0000-000000000000"); !v.HasErrors() {
		t.Error("nil UUID accepted")
	}
	if v := New().RequiredID("id", ""); !v.HasErrors() {
		t.Error("empty UUID accepted")
	}
}

func TestOneOf(t *testing.T) {
	allowed := []string{"easy", "medium", "hard"}
	if v := New().OneOf("difficulty", "medium", allowed); v.HasErrors() {
		t.Error("allowed value rejected")
	}
	if v := New().OneOf("difficulty", "brutal", allowed); !v.HasErrors() {
		t.Error("disallowed value accepted")
	}
	if v := New().OneOf("difficulty", "", allowed); v.HasErrors() {
		t.Error("empty optional value rejected")
	}
}

func TestCustom(t *testing.T) {
	v := New().Custom(false, "request", "must target categories, traits, or a job description")
	if !v.HasErrors() {
		t.Fatal("expected custom condition failure")
	}
	if v.Errors()[0].Field != "request" {
		t.Fatalf("unexpected field: %s", v.Errors()[0].Field)
	}
}
