// README: Google Directions routing; returns the decoded overview polyline.
package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"kabu/internal/types"
)

// RouteService handles interactions with the Google Maps Directions API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// GetRoute returns the driving polyline and travel duration between two
// coordinates.
func (s *RouteService) GetRoute(ctx context.Context, origin, destination types.Point) ([]types.Point, time.Duration, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Lat, origin.Lng),
		Destination: fmt.Sprintf("%f,%f", destination.Lat, destination.Lng),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, 0, fmt.Errorf("no route found")
	}

	decoded, err := routes[0].OverviewPolyline.Decode()
	if err != nil {
		return nil, 0, fmt.Errorf("decode polyline: %w", err)
	}
	points := make([]types.Point, len(decoded))
	for i, ll := range decoded {
		points[i] = types.Point{Lat: ll.Lat, Lng: ll.Lng}
	}

	var duration time.Duration
	for _, leg := range routes[0].Legs {
		duration += leg.Duration
	}
	return points, duration, nil
}
