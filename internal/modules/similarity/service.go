// README: Trajectory similarity engine; ring-adjacent Hausdorff scoring.
package similarity

import (
	"context"
	"math"

	"kabu/internal/modules/trip"
	"kabu/internal/types"
)

// CarpoolableMeters is the symmetric Hausdorff threshold below which two
// routes are considered shareable.
const CarpoolableMeters = 1000.0

// Result is the score for one carpoolable trip pair.
type Result struct {
	TripA       types.ID `json:"trip1_id"`
	TripB       types.ID `json:"trip2_id"`
	DistanceKm  float64  `json:"hausdorff_distance_km"`
	Carpoolable bool     `json:"is_carpoolable"`
	Zone        string   `json:"projection_zone"`
}

// TripLoader supplies route data for the trips being scored.
type TripLoader interface {
	GetByIDs(ctx context.Context, ids []types.ID) (map[types.ID]*trip.Trip, error)
}

type Engine struct {
	trips TripLoader
}

func NewEngine(trips TripLoader) *Engine {
	return &Engine{trips: trips}
}

// ScoreRing scores consecutive pairs of the ring, wrapping the last trip
// back to the first, and returns only pairs under the carpoolable threshold.
// Only ring-adjacent pairs are compared, not every pair; the caller places
// the reference trip first so every wrap-around still touches it.
func (e *Engine) ScoreRing(ctx context.Context, ids []types.ID) ([]Result, error) {
	if len(ids) < 2 {
		return nil, nil
	}

	trips, err := e.trips.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var results []Result
	for i := range ids {
		a := trips[ids[i]]
		b := trips[ids[(i+1)%len(ids)]]
		if a == nil || b == nil {
			// Candidate deleted between filtering and scoring; expected
			// under concurrent cleanup.
			continue
		}
		if len(a.Route) == 0 || len(b.Route) == 0 {
			continue
		}

		pr, err := newProjector(a.Start().Lng)
		if err != nil {
			return nil, err
		}

		// Each trip's own recorded route is projected and compared,
		// both through the pair's single transformer.
		meters := symmetricHausdorff(pr.project(a.Route), pr.project(b.Route))
		if meters >= CarpoolableMeters {
			continue
		}
		results = append(results, Result{
			TripA:       a.ID,
			TripB:       b.ID,
			DistanceKm:  math.Round(meters) / 1000,
			Carpoolable: true,
			Zone:        pr.label,
		})
	}
	return results, nil
}
