package explain

import "github.com/abhisek/compass/internal/llm"

// MaxExplanationLen bounds a generated explanation in characters.
const MaxExplanationLen = 280

// ExplanationSchema is the JSON schema for a single question explanation.
var ExplanationSchema = &llm.Schema{
	Name:        "question-explanation",
	Description: "A neutral one-sentence explanation of what a survey statement measures",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "One neutral sentence on what agreeing or disagreeing reveals, without taking sides",
				"minLength":   1,
				"maxLength":   MaxExplanationLen,
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	},
}
