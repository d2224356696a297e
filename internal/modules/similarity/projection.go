// README: Longitude-band UTM projection used to compare routes in meters.
package similarity

import (
	"errors"

	"github.com/wroge/wgs84"

	"kabu/internal/types"
)

var ErrProjection = errors.New("longitude outside configured projection zones")

// The operating region spans three UTM zones. A route pair is always
// projected through the single zone picked from the pair's reference point,
// so both routes share one metric coordinate system.
type zoneBand struct {
	minLon  float64
	maxLon  float64
	utmZone float64
	label   string
}

var zoneBands = []zoneBand{
	{0, 6, 31, "EPSG:32631"},
	{6, 12, 32, "EPSG:32632"},
	{12, 18, 33, "EPSG:32633"},
}

// projector converts WGS84 degree coordinates into planar meters for one
// UTM zone.
type projector struct {
	label     string
	transform func(a, b, c float64) (float64, float64, float64)
}

func newProjector(lon float64) (*projector, error) {
	for _, z := range zoneBands {
		if lon >= z.minLon && lon < z.maxLon {
			return &projector{
				label:     z.label,
				transform: wgs84.LonLat().To(wgs84.UTM(z.utmZone, true)),
			}, nil
		}
	}
	return nil, ErrProjection
}

// project maps every route point into the zone's easting/northing plane.
func (pr *projector) project(route []types.Point) [][2]float64 {
	out := make([][2]float64, len(route))
	for i, p := range route {
		x, y, _ := pr.transform(p.Lng, p.Lat, 0)
		out[i] = [2]float64{x, y}
	}
	return out
}
