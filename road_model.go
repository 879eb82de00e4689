package road2gpkg

import (
	"fmt"

	"github.com/pkg/errors"
)

/* Road model stuff */

// Curve is the evaluation capability a road-format backend provides for a
// single lane. The lane frame is (s, r, h): s runs along the lane from 0 to
// Length(), r is the lateral offset at that s (positive towards the left of
// travel), h is the elevation offset above the road surface.
//
// Implementations must be safe for concurrent readers since segments are
// sampled in parallel.
type Curve interface {
	// Length returns lane length in world units
	Length() float64
	// LateralBounds returns pair (min_r, max_r) of lateral extents at given s
	LateralBounds(s float64) (float64, float64)
	// ToWorld maps lane frame coordinates (s, r, h) to a world point
	ToWorld(s, r, h float64) Vector3
}

// Lane is a drivable strip of a segment described by a parametric curve.
// Left and Right are indexes of adjacent lanes in the owning segment's Lanes
// slice, -1 for no neighbor
type Lane struct {
	ID        string
	Type      string
	Direction string
	Curve     Curve
	Left      int
	Right     int
}

// NewLane returns a lane with no neighbors and default type and direction
func NewLane(id string, curve Curve) *Lane {
	return &Lane{
		ID:        id,
		Type:      defaultLaneType,
		Direction: defaultLaneDirection,
		Curve:     curve,
		Left:      -1,
		Right:     -1,
	}
}

// Segment is a set of laterally adjacent lanes sharing a cross-section.
// Lanes keeps the model's native order which is not necessarily
// left-to-right
type Segment struct {
	ID    string
	Name  string
	Lanes []*Lane
}

// Chain links lanes by their indexes in Lanes, listed from the leftmost lane
// to the rightmost one
func (segment *Segment) Chain(leftToRight ...int) {
	for pos, idx := range leftToRight {
		lane := segment.Lanes[idx]
		lane.Left = -1
		lane.Right = -1
		if pos > 0 {
			lane.Left = leftToRight[pos-1]
		}
		if pos < len(leftToRight)-1 {
			lane.Right = leftToRight[pos+1]
		}
	}
}

// Validate checks that adjacency indexes are in range and that walking the
// left/right chain from any lane terminates
func (segment *Segment) Validate() error {
	total := len(segment.Lanes)
	for i, lane := range segment.Lanes {
		if lane.Left < -1 || lane.Left >= total || lane.Right < -1 || lane.Right >= total {
			return fmt.Errorf("lane '%s' neighbor index is out of range", lane.ID)
		}
		if lane.Left == i || lane.Right == i {
			return errors.Wrapf(ErrCyclicAdjacency, "lane '%s' is its own neighbor", lane.ID)
		}
	}
	for i := range segment.Lanes {
		steps := 0
		for idx := i; idx != -1; idx = segment.Lanes[idx].Left {
			steps++
			if steps > total {
				return errors.Wrapf(ErrCyclicAdjacency, "segment '%s'", segment.ID)
			}
		}
		steps = 0
		for idx := i; idx != -1; idx = segment.Lanes[idx].Right {
			steps++
			if steps > total {
				return errors.Wrapf(ErrCyclicAdjacency, "segment '%s'", segment.ID)
			}
		}
	}
	return nil
}

// Junction is a collection of segments
type Junction struct {
	ID       string
	Name     string
	Segments []*Segment
}

// LaneEnd references one end of one lane
type LaneEnd struct {
	LaneID string
	End    LaneEndType
}

// BranchPoint groups lane ends on two disjoint sides. Every end on side A is
// a compatible continuation of every end on side B
type BranchPoint struct {
	ID    string
	ASide []LaneEnd
	BSide []LaneEnd
}

// RoadModel is the root of a road network
type RoadModel struct {
	ID           string
	Junctions    []*Junction
	BranchPoints []*BranchPoint
}

// Validate checks adjacency chains of every segment in the model
func (model *RoadModel) Validate() error {
	for _, junction := range model.Junctions {
		for _, segment := range junction.Segments {
			if err := segment.Validate(); err != nil {
				return errors.Wrapf(err, "junction '%s'", junction.ID)
			}
		}
	}
	return nil
}
