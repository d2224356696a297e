// README: Geo index store backed by Redis GEO; two endpoint members per trip.
package geoindex

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"kabu/internal/types"
)

const (
	tripGeoKey  = "trips:geo"
	startSuffix = ":start"
	endSuffix   = ":end"
)

// Store holds every live trip's two endpoint entries, named "{id}:start" and
// "{id}:end". GeoAdd overwrites by member name, so re-indexing is idempotent.
type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) IndexTrip(ctx context.Context, id types.ID, start, end types.Point) error {
	return s.redis.GeoAdd(ctx, tripGeoKey,
		&redis.GeoLocation{
			Name:      memberName(id, startSuffix),
			Longitude: start.Lng,
			Latitude:  start.Lat,
		},
		&redis.GeoLocation{
			Name:      memberName(id, endSuffix),
			Longitude: end.Lng,
			Latitude:  end.Lat,
		},
	).Err()
}

// NearbyStarts returns ids whose start endpoint lies within radiusKm of p.
func (s *Store) NearbyStarts(ctx context.Context, p types.Point, radiusKm float64) ([]types.ID, error) {
	return s.nearby(ctx, p, radiusKm, startSuffix)
}

// NearbyEnds returns ids whose end endpoint lies within radiusKm of p.
func (s *Store) NearbyEnds(ctx context.Context, p types.Point, radiusKm float64) ([]types.ID, error) {
	return s.nearby(ctx, p, radiusKm, endSuffix)
}

func (s *Store) nearby(ctx context.Context, p types.Point, radiusKm float64, suffix string) ([]types.ID, error) {
	members, err := s.redis.GeoSearch(ctx, tripGeoKey, &redis.GeoSearchQuery{
		Longitude:  p.Lng,
		Latitude:   p.Lat,
		Radius:     radiusKm,
		RadiusUnit: "km",
	}).Result()
	if err != nil {
		return nil, err
	}
	var ids []types.ID
	for _, m := range members {
		raw, ok := strings.CutSuffix(m, suffix)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, types.ID(n))
	}
	return ids, nil
}

func (s *Store) RemoveTrip(ctx context.Context, id types.ID) error {
	return s.redis.ZRem(ctx, tripGeoKey,
		memberName(id, startSuffix),
		memberName(id, endSuffix),
	).Err()
}

func memberName(id types.ID, suffix string) string {
	return fmt.Sprintf("%d%s", int64(id), suffix)
}
