// README: Trip service implements submission, lookup, and cancellation.
package trip

import (
	"context"
	"errors"
	"time"

	"kabu/internal/types"
)

var (
	ErrNotFound     = errors.New("trip not found")
	ErrInvalidRoute = errors.New("invalid route")
	ErrActiveTrip   = errors.New("user already has a trip")
	ErrBadRequest   = errors.New("bad request")
)

// GeoIndex is the slice of the geospatial index the trip module needs:
// removing a trip's endpoint entries when the trip itself goes away.
type GeoIndex interface {
	RemoveTrip(ctx context.Context, id types.ID) error
}

type Service struct {
	store *Store
	geo   GeoIndex
}

func NewService(store *Store, geo GeoIndex) *Service {
	return &Service{store: store, geo: geo}
}

type CreateCommand struct {
	UserID        types.ID
	Origin        string
	Destination   string
	DepartureTime time.Time
	Gender        string
	Route         []types.Point
}

// Create submits a new trip. A user may hold at most one trip at a time.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Trip, error) {
	if cmd.UserID == 0 || cmd.Origin == "" || cmd.Destination == "" || cmd.DepartureTime.IsZero() {
		return nil, ErrBadRequest
	}
	if err := ValidateRoute(cmd.Route); err != nil {
		return nil, err
	}
	if _, err := s.store.GetByUser(ctx, cmd.UserID); err == nil {
		return nil, ErrActiveTrip
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	t := &Trip{
		UserID:        cmd.UserID,
		Origin:        cmd.Origin,
		Destination:   cmd.Destination,
		DepartureTime: cmd.DepartureTime,
		Gender:        cmd.Gender,
		Route:         cmd.Route,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Trip, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) GetByUser(ctx context.Context, userID types.ID) (*Trip, error) {
	return s.store.GetByUser(ctx, userID)
}

// HasTrip reports whether the user currently holds a trip.
func (s *Service) HasTrip(ctx context.Context, userID types.ID) (bool, error) {
	_, err := s.store.GetByUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Cancel deletes the user's trip and its geo index entries.
func (s *Service) Cancel(ctx context.Context, userID types.ID) error {
	ids, err := s.store.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.geo.RemoveTrip(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
