// README: Background sweep removing departed trips and their geo index entries.
package trip

import (
	"context"
	"log"
	"time"
)

// RunExpirySweeper periodically deletes trips whose departure time has
// elapsed. Geo index members are removed before the rows are deleted so that
// index entries never outlive their trip.
func (s *Service) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SweepExpired(ctx); err != nil {
				log.Printf("trip sweep failed: %v", err)
			}
		}
	}
}

// SweepExpired performs a single cleanup pass.
func (s *Service) SweepExpired(ctx context.Context) error {
	now := time.Now().UTC()
	ids, err := s.store.ExpiredIDs(ctx, now)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.geo.RemoveTrip(ctx, id); err != nil {
			return err
		}
	}
	deleted, err := s.store.DeleteExpired(ctx, now)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("trip sweep deleted %d expired trips", deleted)
	}
	return nil
}
