// README: Place autocomplete for the trip entry screen.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Suggestion is one autocomplete result.
type Suggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

// maxSuggestions keeps the autocomplete payload small for the mobile client.
const maxSuggestions = 3

// PlacesService handles interactions with the Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a PlacesService with the given API key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// Autocomplete returns up to maxSuggestions place predictions for the input.
func (s *PlacesService) Autocomplete(ctx context.Context, input string) ([]Suggestion, error) {
	resp, err := s.client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{
		Input: input,
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	suggestions := make([]Suggestion, 0, maxSuggestions)
	for _, p := range resp.Predictions {
		suggestions = append(suggestions, Suggestion{
			Description: p.Description,
			PlaceID:     p.PlaceID,
		})
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions, nil
}
