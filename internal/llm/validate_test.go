package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func explanationSchema() *Schema {
	return &Schema{
		Name:        "test-explanation",
		Description: "A short explanation of a survey statement",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"explanation": map[string]any{"type": "string", "minLength": 1},
				"axis":        map[string]any{"type": "string", "enum": []any{"economic", "social"}},
				"confidence":  map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			},
			"required":             []any{"explanation"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"explanation":"Markets set prices.","axis":"economic","confidence":80}`, false},
		{"optional fields omitted", `{"explanation":"Markets set prices."}`, false},
		{"missing required", `{"axis":"social"}`, true},
		{"empty explanation", `{"explanation":""}`, true},
		{"wrong type", `{"explanation":42}`, true},
		{"enum violation", `{"explanation":"x","axis":"cultural"}`, true},
		{"out of range", `{"explanation":"x","confidence":101}`, true},
		{"unknown field", `{"explanation":"x","extra":true}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(explanationSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got %T", err)
			}
			if string(invErr.Content) != tt.raw {
				t.Errorf("Content = %q, want %q", invErr.Content, tt.raw)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_ArrayItems(t *testing.T) {
	schema := &Schema{
		Name: "test-explanations",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"explanations": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id":          map[string]any{"type": "integer"},
							"explanation": map[string]any{"type": "string"},
						},
						"required": []any{"id", "explanation"},
					},
				},
			},
			"required": []any{"explanations"},
		},
	}

	valid := json.RawMessage(`{"explanations":[{"id":1,"explanation":"a"},{"id":2,"explanation":"b"}]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"explanations":[{"id":"one","explanation":"a"}]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong item type")
	}
}
