package road2gpkg

import "github.com/pkg/errors"

var (
	// ErrInvalidCurve means a lane reported a non-positive curve length
	ErrInvalidCurve = errors.New("road2gpkg: invalid curve length")
	// ErrInvalidGeometry means a linestring with fewer than 2 points
	ErrInvalidGeometry = errors.New("road2gpkg: linestring needs at least 2 points")
	// ErrCyclicAdjacency means a left/right lane adjacency chain does not terminate
	ErrCyclicAdjacency = errors.New("road2gpkg: cyclic lane adjacency chain")
)
