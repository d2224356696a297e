// README: Ring scoring tests against an in-memory trip source.
package similarity

import (
	"context"
	"testing"
	"time"

	"kabu/internal/modules/trip"
	"kabu/internal/types"
)

type memTrips map[types.ID]*trip.Trip

func (m memTrips) GetByIDs(_ context.Context, ids []types.ID) (map[types.ID]*trip.Trip, error) {
	out := make(map[types.ID]*trip.Trip, len(ids))
	for _, id := range ids {
		if t, ok := m[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func lagosTrip(id types.ID, latShift float64) *trip.Trip {
	return &trip.Trip{
		ID:            id,
		UserID:        id,
		Origin:        "Yaba",
		Destination:   "Lekki",
		DepartureTime: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
		Route: []types.Point{
			{Lat: 6.50 + latShift, Lng: 3.38},
			{Lat: 6.55 + latShift, Lng: 3.39},
			{Lat: 6.60 + latShift, Lng: 3.40},
		},
	}
}

func TestScoreRingIdenticalRoutes(t *testing.T) {
	trips := memTrips{1: lagosTrip(1, 0), 2: lagosTrip(2, 0)}
	engine := NewEngine(trips)

	results, err := engine.ScoreRing(context.Background(), []types.ID{1, 2})
	if err != nil {
		t.Fatalf("ScoreRing: %v", err)
	}
	// Ring of two wraps back, so both (1,2) and (2,1) are scored.
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Carpoolable {
			t.Errorf("identical routes should be carpoolable")
		}
		if r.DistanceKm != 0 {
			t.Errorf("identical routes distance = %v, want 0", r.DistanceKm)
		}
		if r.Zone != "EPSG:32631" {
			t.Errorf("zone = %s, want EPSG:32631", r.Zone)
		}
	}
}

func TestScoreRingNearbyRouteCarpoolable(t *testing.T) {
	// 0.0045 degrees of latitude is roughly 500 m.
	trips := memTrips{1: lagosTrip(1, 0), 2: lagosTrip(2, 0.0045)}
	engine := NewEngine(trips)

	results, err := engine.ScoreRing(context.Background(), []types.ID{1, 2})
	if err != nil {
		t.Fatalf("ScoreRing: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	r := results[0]
	if !r.Carpoolable {
		t.Fatal("expected carpoolable pair")
	}
	if r.DistanceKm < 0.3 || r.DistanceKm > 0.7 {
		t.Fatalf("distance = %v km, want roughly 0.5", r.DistanceKm)
	}
}

func TestScoreRingFarRouteOmitted(t *testing.T) {
	// 0.02 degrees of latitude is over 2 km, past the threshold.
	trips := memTrips{1: lagosTrip(1, 0), 2: lagosTrip(2, 0.02)}
	engine := NewEngine(trips)

	results, err := engine.ScoreRing(context.Background(), []types.ID{1, 2})
	if err != nil {
		t.Fatalf("ScoreRing: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("pairs at or above the threshold must be omitted, got %d results", len(results))
	}
}

func TestScoreRingWrapsLastToFirst(t *testing.T) {
	trips := memTrips{
		1: lagosTrip(1, 0),
		2: lagosTrip(2, 0.001),
		3: lagosTrip(3, 0.002),
	}
	engine := NewEngine(trips)

	results, err := engine.ScoreRing(context.Background(), []types.ID{1, 2, 3})
	if err != nil {
		t.Fatalf("ScoreRing: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected pairs (1,2), (2,3), (3,1); got %d results", len(results))
	}
	if results[2].TripA != 3 || results[2].TripB != 1 {
		t.Fatalf("last pair = (%d,%d), want wrap-around (3,1)", results[2].TripA, results[2].TripB)
	}
}

func TestScoreRingComparesEachTripsOwnRoute(t *testing.T) {
	// If the engine compared one trip's route against itself, the distance
	// would collapse to zero; distinct routes must yield a nonzero score.
	trips := memTrips{1: lagosTrip(1, 0), 2: lagosTrip(2, 0.003)}
	engine := NewEngine(trips)

	results, err := engine.ScoreRing(context.Background(), []types.ID{1, 2})
	if err != nil {
		t.Fatalf("ScoreRing: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected carpoolable results")
	}
	if results[0].DistanceKm == 0 {
		t.Fatal("distinct routes scored 0; engine must compare each trip's own route")
	}
}

func TestScoreRingSkipsMissingTrips(t *testing.T) {
	trips := memTrips{1: lagosTrip(1, 0), 3: lagosTrip(3, 0)}
	engine := NewEngine(trips)

	// Trip 2 was deleted between filtering and scoring.
	results, err := engine.ScoreRing(context.Background(), []types.ID{1, 2, 3})
	if err != nil {
		t.Fatalf("ScoreRing: %v", err)
	}
	// Pairs (1,2) and (2,3) are dropped; only the wrap (3,1) survives.
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].TripA != 3 || results[0].TripB != 1 {
		t.Fatalf("surviving pair = (%d,%d), want (3,1)", results[0].TripA, results[0].TripB)
	}
}

func TestScoreRingNoTransitivityAssumed(t *testing.T) {
	// Adjacent pairs can each be under the threshold while the two outer
	// routes are not; the engine must only report what it actually scored.
	trips := memTrips{
		1: lagosTrip(1, 0),
		2: lagosTrip(2, 0.007),
		3: lagosTrip(3, 0.014),
	}
	engine := NewEngine(trips)

	results, err := engine.ScoreRing(context.Background(), []types.ID{1, 2, 3})
	if err != nil {
		t.Fatalf("ScoreRing: %v", err)
	}
	for _, r := range results {
		if r.TripA == 3 && r.TripB == 1 {
			t.Fatal("(3,1) are about 1.5 km apart and must not be reported carpoolable")
		}
	}
	// (1,2) and (2,3) are each roughly 780 m apart.
	if len(results) != 2 {
		t.Fatalf("expected exactly the two adjacent close pairs, got %d", len(results))
	}
}

func TestScoreRingProjectionError(t *testing.T) {
	bad := lagosTrip(1, 0)
	bad.Route = []types.Point{{Lat: 40.7, Lng: -74.0}}
	trips := memTrips{1: bad, 2: lagosTrip(2, 0)}
	engine := NewEngine(trips)

	if _, err := engine.ScoreRing(context.Background(), []types.ID{1, 2}); err != ErrProjection {
		t.Fatalf("expected ErrProjection, got %v", err)
	}
}

func TestScoreRingTooShort(t *testing.T) {
	engine := NewEngine(memTrips{1: lagosTrip(1, 0)})
	results, err := engine.ScoreRing(context.Background(), []types.ID{1})
	if err != nil {
		t.Fatalf("ScoreRing: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("a single trip cannot form a pair, got %d results", len(results))
	}
}
