// README: Hausdorff distance between projected point sets.
package similarity

import "math"

// directedHausdorff returns max over points in a of the distance to the
// closest point in b. Inputs are planar meter coordinates.
func directedHausdorff(a, b [][2]float64) float64 {
	var worst float64
	for _, p := range a {
		best := math.Inf(1)
		for _, q := range b {
			dx := p[0] - q[0]
			dy := p[1] - q[1]
			if d := math.Hypot(dx, dy); d < best {
				best = d
			}
		}
		if best > worst {
			worst = best
		}
	}
	return worst
}

// symmetricHausdorff is the larger of the two directed distances, which
// makes the figure a true metric between point sets.
func symmetricHausdorff(a, b [][2]float64) float64 {
	return math.Max(directedHausdorff(a, b), directedHausdorff(b, a))
}
