package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/000alen/ontology/pkg/causal"
)

// PropertySuggester implements causal.Suggester on top of a Client. Each
// Suggest call sends the vertex context as JSON and asks for
// schema-constrained suggestions.
type PropertySuggester struct {
	client Client
	model  string
}

// PropertySuggesterParams configures a PropertySuggester.
type PropertySuggesterParams struct {
	// Client performs the completion calls. Required.
	Client Client
	// Model overrides the client's configured chat model. Optional.
	Model string
}

// NewPropertySuggester returns a suggester backed by the given client.
func NewPropertySuggester(params PropertySuggesterParams) (*PropertySuggester, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("llm: client is required")
	}
	return &PropertySuggester{
		client: params.Client,
		model:  params.Model,
	}, nil
}

type suggestionPayload struct {
	Suggestions []causal.Suggestion `json:"suggestions"`
}

// Suggest sends the vertex context to the model and returns the cleaned
// suggestions. Suggestions without a name are dropped; confidences are
// clamped into [0, 1].
func (s *PropertySuggester) Suggest(ctx context.Context, req causal.SuggestionRequest) ([]causal.Suggestion, error) {
	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("llm: encode suggestion request: %w", err)
	}

	prompt := fmt.Sprintf(SuggestPropertiesPrompt, string(data))

	var payload suggestionPayload
	opts := []GenerateOption{WithTemperature(0.1)}
	if s.model != "" {
		opts = append(opts, WithModel(s.model))
	}
	if err := s.client.GenerateCompletionWithFormat(
		ctx,
		"property_suggestions",
		"Properties propagating onto a graph entity from its predecessors",
		prompt,
		&payload,
		opts...,
	); err != nil {
		return nil, fmt.Errorf("llm: suggest properties: %w", err)
	}

	return cleanSuggestions(payload.Suggestions), nil
}

// cleanSuggestions drops unusable entries and clamps confidences. Models
// occasionally emit nameless suggestions or confidences outside [0, 1].
func cleanSuggestions(in []causal.Suggestion) []causal.Suggestion {
	out := make([]causal.Suggestion, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		if s.Confidence < 0 {
			s.Confidence = 0
		}
		if s.Confidence > 1 {
			s.Confidence = 1
		}
		out = append(out, s)
	}
	return out
}
