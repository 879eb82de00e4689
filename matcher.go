package road2gpkg

// DefaultMatchTolerance is the endpoint distance (world units) under which
// two sampled lane edges count as the same physical boundary
const DefaultMatchTolerance = 0.5

// matchBoundaries decides whether two sampled point sequences describe the
// same physical boundary and, if so, whether one runs reversed relative to
// the other. Only endpoints are compared: sampled edges of adjacent lanes
// either coincide or diverge, they do not rejoin midway. Both endpoint
// distances of a direction test must be strictly below tolerance. For a
// degenerate zero length boundary both tests can pass at once, then the
// same direction answer wins.
func matchBoundaries(a, b []Vector3, tolerance float64) BoundaryMatch {
	if len(a) == 0 || len(b) == 0 {
		return MATCH_NONE
	}
	aStart, aFinish := a[0], a[len(a)-1]
	bStart, bFinish := b[0], b[len(b)-1]
	if findDistance(aStart, bStart) < tolerance && findDistance(aFinish, bFinish) < tolerance {
		return MATCH_SAME_DIRECTION
	}
	if findDistance(aStart, bFinish) < tolerance && findDistance(aFinish, bStart) < tolerance {
		return MATCH_REVERSED
	}
	return MATCH_NONE
}
