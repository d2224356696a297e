// README: Common identifier and coordinate value objects used across modules.
package types

// ID is a database-assigned numeric identifier for users and trips.
type ID int64

// Point is a WGS84 coordinate. The JSON field names follow the mobile
// client's route payload format.
type Point struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Valid reports whether the point lies inside the WGS84 degree ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
