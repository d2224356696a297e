// README: Candidate locator; direction-consistent intersection of endpoint queries.
package geoindex

import (
	"context"

	"kabu/internal/modules/trip"
	"kabu/internal/types"
)

// GeoStore is the index contract the locator consumes. The production
// implementation is the Redis-backed Store in this package.
type GeoStore interface {
	IndexTrip(ctx context.Context, id types.ID, start, end types.Point) error
	NearbyStarts(ctx context.Context, p types.Point, radiusKm float64) ([]types.ID, error)
	NearbyEnds(ctx context.Context, p types.Point, radiusKm float64) ([]types.ID, error)
}

type Locator struct {
	geo      GeoStore
	radiusKm float64
}

func NewLocator(geo GeoStore, radiusKm float64) *Locator {
	return &Locator{geo: geo, radiusKm: radiusKm}
}

// Candidates returns ids of trips whose start is within the radius of the
// reference start AND whose end is within the radius of the reference end.
// A trip matching only one endpoint is rejected here, before any similarity
// scoring runs. The reference trip's own endpoints are (re-)indexed first so
// concurrent lookups from other trips can see it; there is deliberately no
// isolation around the index-then-query sequence.
func (l *Locator) Candidates(ctx context.Context, id types.ID, route []types.Point) ([]types.ID, error) {
	if err := trip.ValidateRoute(route); err != nil {
		return nil, err
	}
	start := route[0]
	end := route[len(route)-1]

	if err := l.geo.IndexTrip(ctx, id, start, end); err != nil {
		return nil, err
	}

	nearStart, err := l.geo.NearbyStarts(ctx, start, l.radiusKm)
	if err != nil {
		return nil, err
	}
	nearEnd, err := l.geo.NearbyEnds(ctx, end, l.radiusKm)
	if err != nil {
		return nil, err
	}

	ends := make(map[types.ID]struct{}, len(nearEnd))
	for _, c := range nearEnd {
		ends[c] = struct{}{}
	}

	var candidates []types.ID
	for _, c := range nearStart {
		if c == id {
			continue
		}
		if _, ok := ends[c]; ok {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}
