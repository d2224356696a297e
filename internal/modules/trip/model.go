// README: Trip aggregate and route validation.
package trip

import (
	"time"

	"kabu/internal/types"
)

// Trip is one proposed journey. The route is the ordered driving polyline;
// its first point is the origin and its last point is the destination.
type Trip struct {
	ID            types.ID
	UserID        types.ID
	Origin        string
	Destination   string
	DepartureTime time.Time
	Gender        string
	Route         []types.Point
}

// Start returns the first route point.
func (t *Trip) Start() types.Point {
	return t.Route[0]
}

// End returns the last route point.
func (t *Trip) End() types.Point {
	return t.Route[len(t.Route)-1]
}

// Expired reports whether the departure time has elapsed at the given instant.
func (t *Trip) Expired(now time.Time) bool {
	return !t.DepartureTime.After(now)
}

// ValidateRoute checks that a route is non-empty and that every point is a
// valid WGS84 coordinate.
func ValidateRoute(route []types.Point) error {
	if len(route) == 0 {
		return ErrInvalidRoute
	}
	for _, p := range route {
		if !p.Valid() {
			return ErrInvalidRoute
		}
	}
	return nil
}
