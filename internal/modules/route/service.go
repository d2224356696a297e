// README: Route lookup with a Redis response cache in front of the maps API.
package route

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kabu/internal/types"
)

const cacheKey = "routes:cache"

// RouteFetcher is the upstream directions provider.
type RouteFetcher interface {
	GetRoute(ctx context.Context, origin, destination types.Point) ([]types.Point, time.Duration, error)
}

// Result is a resolved route with its travel duration in seconds.
type Result struct {
	Coordinates []types.Point `json:"coordinates"`
	Duration    float64       `json:"duration"`
}

type Service struct {
	redis   *redis.Client
	fetcher RouteFetcher
}

func NewService(redis *redis.Client, fetcher RouteFetcher) *Service {
	return &Service{redis: redis, fetcher: fetcher}
}

// Lookup returns the route between two coordinates, serving repeated
// requests for the same pair from the cache.
func (s *Service) Lookup(ctx context.Context, origin, destination types.Point) (*Result, error) {
	field := cacheField(origin, destination)

	cached, err := s.redis.HGet(ctx, cacheKey, field).Result()
	if err == nil {
		var res Result
		if err := json.Unmarshal([]byte(cached), &res); err == nil {
			return &res, nil
		}
	} else if err != redis.Nil {
		return nil, err
	}

	coords, duration, err := s.fetcher.GetRoute(ctx, origin, destination)
	if err != nil {
		return nil, err
	}
	res := &Result{Coordinates: coords, Duration: duration.Seconds()}

	payload, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	if err := s.redis.HSet(ctx, cacheKey, field, payload).Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func cacheField(origin, destination types.Point) string {
	return fmt.Sprintf("%f,%f|%f,%f", origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}
