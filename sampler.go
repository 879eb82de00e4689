package road2gpkg

import (
	"github.com/pkg/errors"
)

// sampleBoundary evaluates the lane's curve at n evenly spaced s values and
// returns world points of the chosen lane edge. For the left edge the
// lateral offset is the upper lateral bound at that s, for the right edge
// the lower one. Height offset is always zero. Points follow the lane's
// increasing-s direction and include both curve endpoints exactly.
func sampleBoundary(lane *Lane, side BoundarySide, n int) ([]Vector3, error) {
	length := lane.Curve.Length()
	if length <= 0 {
		return nil, errors.Wrapf(ErrInvalidCurve, "lane '%s' has length %f", lane.ID, length)
	}
	points := make([]Vector3, n)
	for i := 0; i < n; i++ {
		s := length * float64(i) / float64(n-1)
		minR, maxR := lane.Curve.LateralBounds(s)
		r := minR
		if side == SIDE_LEFT {
			r = maxR
		}
		points[i] = lane.Curve.ToWorld(s, r, 0)
	}
	return points, nil
}
