// README: Temporal compatibility filter; builds the similarity ring.
package matching

import (
	"context"
	"time"

	"kabu/internal/modules/trip"
	"kabu/internal/types"
)

// DepartureWindow is the maximum departure-time gap between compatible
// trips. The boundary is inclusive.
const DepartureWindow = 30 * time.Minute

// temporalFilter keeps candidates departing within the window of the
// reference trip, preserving candidate order, and prepends the reference
// trip's id to anchor the ring. Candidates that no longer load are skipped.
// A ring of one trip cannot form a match, so nil is returned to
// short-circuit the pipeline.
func (s *Service) temporalFilter(ctx context.Context, ref *trip.Trip, candidateIDs []types.ID) ([]types.ID, error) {
	candidates, err := s.trips.GetByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	ring := []types.ID{ref.ID}
	for _, id := range candidateIDs {
		if id == ref.ID {
			continue
		}
		c, ok := candidates[id]
		if !ok {
			continue
		}
		gap := c.DepartureTime.Sub(ref.DepartureTime)
		if gap < 0 {
			gap = -gap
		}
		if gap <= DepartureWindow {
			ring = append(ring, id)
		}
	}

	if len(ring) <= 1 {
		return nil, nil
	}
	return ring, nil
}
