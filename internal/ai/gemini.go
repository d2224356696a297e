// README: Gemini-backed meeting point suggestions for matched trips.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Suggester proposes a mutually convenient pickup spot for a matched pair.
type Suggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewSuggester initializes a Gemini client. apiKey should come from
// environment configuration.
func NewSuggester(ctx context.Context, apiKey string) (*Suggester, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Flash model for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")
	model.SetTemperature(0.4)

	return &Suggester{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (s *Suggester) Close() {
	s.client.Close()
}

// SuggestMeetingPoint asks the model for a short pickup suggestion given the
// two riders' origins and their shared destination.
func (s *Suggester) SuggestMeetingPoint(ctx context.Context, originA, originB, destination string) (string, error) {
	prompt := fmt.Sprintf(
		"Two commuters want to carpool. One starts at %q, the other at %q, and both are heading to %q. "+
			"Suggest a single well-known public landmark between their starting points where they could meet, "+
			"and answer in one short sentence.",
		originA, originB, destination,
	)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return strings.TrimSpace(out.String()), nil
}
