// README: Matching orchestrator; geo prefilter, temporal filter, similarity, notify.
package matching

import (
	"context"
	"fmt"
	"log"

	"kabu/internal/modules/similarity"
	"kabu/internal/modules/trip"
	"kabu/internal/modules/user"
	"kabu/internal/types"
)

// TripSource supplies trip records for the pipeline. The core only reads
// trips; writes belong to the trip module.
type TripSource interface {
	Get(ctx context.Context, id types.ID) (*trip.Trip, error)
	GetByIDs(ctx context.Context, ids []types.ID) (map[types.ID]*trip.Trip, error)
}

// Locator produces geographically plausible candidate ids for a trip.
type Locator interface {
	Candidates(ctx context.Context, id types.ID, route []types.Point) ([]types.ID, error)
}

// Scorer scores the ring of temporally compatible trips.
type Scorer interface {
	ScoreRing(ctx context.Context, ids []types.ID) ([]similarity.Result, error)
}

// UserSource resolves a matched trip's owner for notification.
type UserSource interface {
	Get(ctx context.Context, id types.ID) (*user.User, error)
}

// Notifier delivers a push message to a device token.
type Notifier interface {
	Notify(ctx context.Context, token, title, body string) error
}

type Service struct {
	trips    TripSource
	locator  Locator
	scorer   Scorer
	users    UserSource
	notifier Notifier
}

func NewService(trips TripSource, locator Locator, scorer Scorer, users UserSource, notifier Notifier) *Service {
	return &Service{
		trips:    trips,
		locator:  locator,
		scorer:   scorer,
		users:    users,
		notifier: notifier,
	}
}

// FindMatches runs the full pipeline for one reference trip and returns the
// deduplicated match group. Each stage that comes up empty ends the
// invocation with an empty group. Owners of newly matched trips are notified
// at most once per invocation, and a failed notification never fails the
// request.
func (s *Service) FindMatches(ctx context.Context, tripID types.ID) (Group, error) {
	ref, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.locator.Candidates(ctx, ref.ID, ref.Route)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return Group{}, nil
	}

	ring, err := s.temporalFilter(ctx, ref, candidates)
	if err != nil {
		return nil, err
	}
	if len(ring) == 0 {
		return Group{}, nil
	}

	results, err := s.scorer.ScoreRing(ctx, ring)
	if err != nil {
		return nil, err
	}

	return s.assemble(ctx, ref, results), nil
}

// ScoreRing exposes the similarity engine directly for callers that already
// hold a ring of trip ids.
func (s *Service) ScoreRing(ctx context.Context, ids []types.ID) ([]similarity.Result, error) {
	return s.scorer.ScoreRing(ctx, ids)
}

// assemble turns carpoolable pair results into the match group, deduplicates
// by trip id, and dispatches owner notifications.
func (s *Service) assemble(ctx context.Context, ref *trip.Trip, results []similarity.Result) Group {
	group := Group{}
	seen := make(map[types.ID]struct{})
	notified := make(map[types.ID]struct{})

	for _, r := range results {
		if !r.Carpoolable {
			continue
		}
		var other types.ID
		switch ref.ID {
		case r.TripA:
			other = r.TripB
		case r.TripB:
			other = r.TripA
		default:
			// Ring-adjacent pair between two candidates; not a match
			// against the reference trip.
			continue
		}
		if other == ref.ID {
			continue
		}
		if _, ok := seen[other]; ok {
			continue
		}

		matched, err := s.trips.Get(ctx, other)
		if err != nil {
			// Deleted since scoring; skip.
			continue
		}
		seen[other] = struct{}{}
		group = append(group, Summary{
			ID:            matched.ID,
			Origin:        matched.Origin,
			Destination:   matched.Destination,
			DepartureTime: matched.DepartureTime,
			Gender:        matched.Gender,
		})

		if _, ok := notified[matched.UserID]; ok {
			continue
		}
		owner, err := s.users.Get(ctx, matched.UserID)
		if err != nil || owner.PushToken == "" {
			continue
		}
		body := fmt.Sprintf("A new user is traveling from %s to %s. Check your matches!", ref.Origin, ref.Destination)
		if err := s.notifier.Notify(ctx, owner.PushToken, "New Carpool Match!", body); err != nil {
			log.Printf("match notification to user %d failed: %v", int64(matched.UserID), err)
		}
		notified[matched.UserID] = struct{}{}
	}
	return group
}
