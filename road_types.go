package road2gpkg

/* Enumerations shared by the road model and the container rows */

// BoundarySide is a side of a lane in its own frame. Left is the side of
// increasing lateral offset
type BoundarySide uint16

const (
	SIDE_LEFT = BoundarySide(iota + 1)
	SIDE_RIGHT
)

func (iotaIdx BoundarySide) String() string {
	return [...]string{"left", "right"}[iotaIdx-1]
}

// BranchSide is one of the two sides of a branch point. Lane ends on side A
// connect to lane ends on side B
type BranchSide uint16

const (
	BRANCH_SIDE_A = BranchSide(iota + 1)
	BRANCH_SIDE_B
)

func (iotaIdx BranchSide) String() string {
	return [...]string{"a", "b"}[iotaIdx-1]
}

// LaneEndType marks which end of a lane terminates at a branch point
type LaneEndType uint16

const (
	LANE_END_START = LaneEndType(iota + 1)
	LANE_END_FINISH
)

func (iotaIdx LaneEndType) String() string {
	return [...]string{"start", "finish"}[iotaIdx-1]
}

// BoundaryMatch is the outcome of comparing two sampled lane edges
type BoundaryMatch uint16

const (
	MATCH_NONE = BoundaryMatch(iota + 1)
	MATCH_SAME_DIRECTION
	MATCH_REVERSED
)

func (iotaIdx BoundaryMatch) String() string {
	return [...]string{"none", "same_direction", "reversed"}[iotaIdx-1]
}

const (
	defaultLaneType      = "driving"
	defaultLaneDirection = "forward"
)
