// README: Geo index store tests against a real Redis instance.
package geoindex

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"kabu/internal/types"
)

func setupTestGeoStore(t *testing.T) *Store {
	t.Helper()

	addr := os.Getenv("KABU_TEST_REDIS")
	if addr == "" {
		t.Skip("KABU_TEST_REDIS not set; skipping Redis-backed geo tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	if err := client.Del(context.Background(), tripGeoKey).Err(); err != nil {
		t.Fatalf("reset geo key: %v", err)
	}
	return NewStore(client)
}

func TestGeoStoreIndexAndSearch(t *testing.T) {
	store := setupTestGeoStore(t)
	ctx := context.Background()

	yaba := types.Point{Lat: 6.5095, Lng: 3.3711}
	lekki := types.Point{Lat: 6.4478, Lng: 3.4723}
	ikeja := types.Point{Lat: 6.6018, Lng: 3.3515} // ~10 km north of Yaba

	if err := store.IndexTrip(ctx, 1, yaba, lekki); err != nil {
		t.Fatalf("index trip 1: %v", err)
	}
	if err := store.IndexTrip(ctx, 2, ikeja, lekki); err != nil {
		t.Fatalf("index trip 2: %v", err)
	}

	starts, err := store.NearbyStarts(ctx, yaba, 2.0)
	if err != nil {
		t.Fatalf("nearby starts: %v", err)
	}
	if len(starts) != 1 || starts[0] != 1 {
		t.Fatalf("starts near Yaba = %v, want [1]", starts)
	}

	ends, err := store.NearbyEnds(ctx, lekki, 2.0)
	if err != nil {
		t.Fatalf("nearby ends: %v", err)
	}
	if len(ends) != 2 {
		t.Fatalf("ends near Lekki = %v, want both trips", ends)
	}
}

func TestGeoStoreSuffixesNeverCross(t *testing.T) {
	store := setupTestGeoStore(t)
	ctx := context.Background()

	// Start and end at the same spot; a start query must not pick up the
	// end member.
	p := types.Point{Lat: 6.5095, Lng: 3.3711}
	if err := store.IndexTrip(ctx, 1, p, p); err != nil {
		t.Fatalf("index trip: %v", err)
	}

	starts, err := store.NearbyStarts(ctx, p, 2.0)
	if err != nil {
		t.Fatalf("nearby starts: %v", err)
	}
	if len(starts) != 1 || starts[0] != 1 {
		t.Fatalf("starts = %v, want [1] exactly once", starts)
	}
}

func TestGeoStoreRemoveTrip(t *testing.T) {
	store := setupTestGeoStore(t)
	ctx := context.Background()

	yaba := types.Point{Lat: 6.5095, Lng: 3.3711}
	lekki := types.Point{Lat: 6.4478, Lng: 3.4723}
	if err := store.IndexTrip(ctx, 1, yaba, lekki); err != nil {
		t.Fatalf("index trip: %v", err)
	}
	if err := store.RemoveTrip(ctx, 1); err != nil {
		t.Fatalf("remove trip: %v", err)
	}

	starts, err := store.NearbyStarts(ctx, yaba, 2.0)
	if err != nil {
		t.Fatalf("nearby starts: %v", err)
	}
	if len(starts) != 0 {
		t.Fatalf("starts after removal = %v, want none", starts)
	}
	ends, err := store.NearbyEnds(ctx, lekki, 2.0)
	if err != nil {
		t.Fatalf("nearby ends: %v", err)
	}
	if len(ends) != 0 {
		t.Fatalf("ends after removal = %v, want none", ends)
	}
}

func TestGeoStoreReindexIsIdempotent(t *testing.T) {
	store := setupTestGeoStore(t)
	ctx := context.Background()

	yaba := types.Point{Lat: 6.5095, Lng: 3.3711}
	lekki := types.Point{Lat: 6.4478, Lng: 3.4723}
	for i := 0; i < 3; i++ {
		if err := store.IndexTrip(ctx, 1, yaba, lekki); err != nil {
			t.Fatalf("index trip: %v", err)
		}
	}

	starts, err := store.NearbyStarts(ctx, yaba, 2.0)
	if err != nil {
		t.Fatalf("nearby starts: %v", err)
	}
	if len(starts) != 1 {
		t.Fatalf("starts = %v, want a single entry after re-indexing", starts)
	}
}
