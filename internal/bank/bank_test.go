package bank

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_EmbeddedBankPasses(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("embedded bank validation failed: %v", err)
	}
}

func TestDefault_Catalog(t *testing.T) {
	b := Default()
	if b.Len() != 42 {
		t.Fatalf("expected 42 questions, got %d", b.Len())
	}
	if b.Version() != "v1.0.0" {
		t.Errorf("expected version v1.0.0, got %q", b.Version())
	}
	for n := MinSpecificity; n <= MaxSpecificity; n++ {
		if len(b.BySpecificity(n)) < 8 {
			t.Errorf("specificity %d has %d questions, want at least 8", n, len(b.BySpecificity(n)))
		}
	}
}

func TestDefault_CatalogOrderPreserved(t *testing.T) {
	all := Default().All()
	for i, q := range all {
		if q.ID != i+1 {
			t.Fatalf("position %d: expected id %d, got %d", i, i+1, q.ID)
		}
	}
}

func TestDefault_SpecificityOneIsUntagged(t *testing.T) {
	for _, q := range Default().BySpecificity(1) {
		if q.Tagged() {
			t.Errorf("question %d at specificity 1 should have no quadrant, got %s", q.ID, q.Quadrant)
		}
	}
}

func TestGet(t *testing.T) {
	q, err := Default().Get(34)
	if err != nil {
		t.Fatalf("get 34: %v", err)
	}
	if q.Text != "Taxation is theft." {
		t.Errorf("unexpected text %q", q.Text)
	}
	if q.Axis != AxisEconomic || q.Weight != 1 || q.Specificity != 5 || q.Quadrant != LibRight {
		t.Errorf("unexpected question fields: %+v", q)
	}

	if _, err := Default().Get(999); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := Default().All()
	all[0].Text = "mutated"
	q, _ := Default().Get(all[0].ID)
	if q.Text == "mutated" {
		t.Error("All() must not expose internal storage")
	}
}

func TestScope(t *testing.T) {
	got := Default().Scope(map[int]bool{9: true, 2: true, 40: true})
	if len(got) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got))
	}
	want := []int{2, 9, 40}
	for i, q := range got {
		if q.ID != want[i] {
			t.Errorf("position %d: expected id %d, got %d", i, want[i], q.ID)
		}
	}
}

func TestValidateQuestions_DetectsProblems(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		wantErr   string
	}{
		{
			name:    "empty",
			wantErr: "no questions",
		},
		{
			name: "duplicate id",
			questions: []Question{
				{ID: 1, Text: "a", Axis: AxisEconomic, Weight: 1, Specificity: 1},
				{ID: 1, Text: "b", Axis: AxisSocial, Weight: -1, Specificity: 1},
			},
			wantErr: "duplicate question ID: 1",
		},
		{
			name:      "bad weight",
			questions: []Question{{ID: 1, Text: "a", Axis: AxisEconomic, Weight: 2, Specificity: 1}},
			wantErr:   "weight must be +1 or -1",
		},
		{
			name:      "bad axis",
			questions: []Question{{ID: 1, Text: "a", Axis: "cultural", Weight: 1, Specificity: 1}},
			wantErr:   "unknown axis",
		},
		{
			name:      "bad specificity",
			questions: []Question{{ID: 1, Text: "a", Axis: AxisSocial, Weight: 1, Specificity: 6}},
			wantErr:   "specificity 6 out of range",
		},
		{
			name:      "bad quadrant",
			questions: []Question{{ID: 1, Text: "a", Axis: AxisSocial, Weight: 1, Specificity: 2, Quadrant: "Center"}},
			wantErr:   "unknown quadrant",
		},
		{
			name:      "non-positive id",
			questions: []Question{{ID: 0, Text: "a", Axis: AxisSocial, Weight: 1, Specificity: 2}},
			wantErr:   "id must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuestions(tt.questions)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should contain %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateQuestions_ReportsAllProblems(t *testing.T) {
	err := validateQuestions([]Question{
		{ID: 1, Text: "", Axis: AxisEconomic, Weight: 1, Specificity: 1},
		{ID: 2, Text: "b", Axis: AxisEconomic, Weight: 0, Specificity: 1},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "empty text") || !strings.Contains(err.Error(), "weight must be") {
		t.Errorf("expected both problems reported, got: %v", err)
	}
}

func TestNew_RejectsBadVersion(t *testing.T) {
	_, err := New("1.0", []Question{{ID: 1, Text: "a", Axis: AxisEconomic, Weight: 1, Specificity: 1}})
	if err == nil {
		t.Fatal("expected error for non-semver version")
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	data := []byte(`version: v1.0.0
questions:
  - id: 1
    text: "a"
    axis: economic
    weight: 1
    specificity: 1
    colour: red
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParse_RejectsSchemaViolation(t *testing.T) {
	data := []byte(`version: v1.0.0
questions:
  - id: 1
    text: "a"
    axis: economic
    weight: 3
    specificity: 1
`)
	_, err := Parse(data)
	if err == nil {
		t.Fatal("expected schema error for weight 3")
	}
	if !strings.Contains(err.Error(), "schema") {
		t.Errorf("expected schema validation error, got: %v", err)
	}
}

func TestParse_RejectsMultipleDocuments(t *testing.T) {
	data := []byte(`version: v1.0.0
questions:
  - {id: 1, text: "a", axis: economic, weight: 1, specificity: 1}
---
version: v1.0.0
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for multiple documents")
	}
}

func TestMarshalRoundTripsDefault(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := Parse(data)
	if err != nil {
		t.Fatalf("parse marshalled bank: %v", err)
	}
	if b.Len() != Default().Len() {
		t.Errorf("expected %d questions, got %d", Default().Len(), b.Len())
	}
}

func TestValidateValue(t *testing.T) {
	for v := MinAnswer; v <= MaxAnswer; v++ {
		if err := ValidateValue(v); err != nil {
			t.Errorf("value %d should be valid: %v", v, err)
		}
	}
	for _, v := range []int{-3, 3, 100} {
		err := ValidateValue(v)
		if !errors.Is(err, ErrInvalidAnswer) {
			t.Errorf("value %d: expected ErrInvalidAnswer, got %v", v, err)
		}
	}
}

func TestLabel(t *testing.T) {
	if Label(-2) != "Disagree" || Label(0) != "Neutral" || Label(2) != "Agree" {
		t.Errorf("unexpected labels: %q %q %q", Label(-2), Label(0), Label(2))
	}
}

func TestComparable(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"v1.0.0", "v1.3.2", true},
		{"v1.0.0", "v2.0.0", false},
		{"v1.0.0", "bogus", false},
	}
	for _, tt := range tests {
		if got := Comparable(tt.a, tt.b); got != tt.want {
			t.Errorf("Comparable(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
	if !Newer("v1.1.0", "v1.0.9") {
		t.Error("v1.1.0 should be newer than v1.0.9")
	}
}

func TestValidateCoverage(t *testing.T) {
	var qs []Question
	for i := 1; i <= 5; i++ {
		qs = append(qs, Question{ID: i, Text: "s", Axis: AxisEconomic, Weight: 1, Specificity: 1})
	}
	err := validateCoverage(qs)
	if err == nil {
		t.Fatal("expected coverage error")
	}
	for _, want := range []string{"no questions at specificity 2", "need at least 8 specificity-1 questions, have 5"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}

	if err := validateCoverage(Default().All()); err != nil {
		t.Errorf("embedded bank: %v", err)
	}
}
