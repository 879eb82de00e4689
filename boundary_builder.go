package road2gpkg

import (
	"fmt"

	"github.com/pkg/errors"
)

/* Boundary reconciliation stuff */

// Boundary is a deduplicated physical lane edge stored once and referenced
// by up to two adjacent lanes
type Boundary struct {
	ID     string
	Points []Vector3
}

// LaneBoundaryRef ties a lane to its two boundaries. An inverted flag means
// the boundary's stored point order runs opposite to the lane's
// increasing-s direction
type LaneBoundaryRef struct {
	LeftBoundaryID  string
	LeftInverted    bool
	RightBoundaryID string
	RightInverted   bool
}

// MismatchFallback reports a shared edge of two adjacent lanes which failed
// to match within tolerance, forcing a duplicate boundary. It signals either
// a tolerance misconfiguration or an inconsistent road model
type MismatchFallback struct {
	SegmentID  string
	LaneID     string
	PrevLaneID string
}

// SegmentBoundaries is the outcome of reconciling one segment
type SegmentBoundaries struct {
	SegmentID string
	// Boundaries keeps creation order so downstream writes stay deterministic
	Boundaries []Boundary
	// LaneRefs maps lane ID to its boundary references
	LaneRefs map[string]LaneBoundaryRef
	// Fallbacks collects mismatched shared edges, empty on a consistent model
	Fallbacks []MismatchFallback
}

// BoundaryByID returns the registered boundary with given ID
func (segmentBoundaries *SegmentBoundaries) BoundaryByID(id string) (Boundary, bool) {
	for _, boundary := range segmentBoundaries.Boundaries {
		if boundary.ID == id {
			return boundary, true
		}
	}
	return Boundary{}, false
}

// orderLanesLeftToRight returns lane indexes of the segment ordered from the
// leftmost lane to the rightmost one. Starting from any lane it walks Left
// until no neighbor remains and then collects lanes walking Right
func orderLanesLeftToRight(segment *Segment) ([]int, error) {
	total := len(segment.Lanes)
	if total == 0 {
		return nil, nil
	}
	leftmost := 0
	steps := 0
	for segment.Lanes[leftmost].Left != -1 {
		leftmost = segment.Lanes[leftmost].Left
		steps++
		if steps > total {
			return nil, errors.Wrapf(ErrCyclicAdjacency, "segment '%s'", segment.ID)
		}
	}
	ordered := make([]int, 0, total)
	for idx := leftmost; idx != -1; idx = segment.Lanes[idx].Right {
		ordered = append(ordered, idx)
		if len(ordered) > total {
			return nil, errors.Wrapf(ErrCyclicAdjacency, "segment '%s'", segment.ID)
		}
	}
	return ordered, nil
}

// buildSegmentBoundaries samples every lane edge of the segment and
// collapses edges shared by adjacent lanes into single boundaries.
//
// Walking lanes left to right, a lane's left edge is compared against the
// right boundary registered for the lane before it: on a match the boundary
// ID is reused, with the inverted flag set when the stored points run
// against the lane's own direction. On no match a fresh boundary is
// registered and the pair is reported as a fallback. Right edges always get
// a fresh boundary which becomes the next lane's match candidate. Boundary
// IDs are formed as {segment ID}_b{index} where the index starts at 0 and
// grows once per boundary created within this call.
func buildSegmentBoundaries(segment *Segment, numSamples int, tolerance float64) (*SegmentBoundaries, error) {
	ordered, err := orderLanesLeftToRight(segment)
	if err != nil {
		return nil, err
	}
	result := &SegmentBoundaries{
		SegmentID: segment.ID,
		LaneRefs:  make(map[string]LaneBoundaryRef, len(segment.Lanes)),
	}
	counter := 0
	registerBoundary := func(points []Vector3) string {
		id := fmt.Sprintf("%s_b%d", segment.ID, counter)
		counter++
		result.Boundaries = append(result.Boundaries, Boundary{ID: id, Points: points})
		return id
	}

	prevRightID := ""
	prevLaneID := ""
	for pos, idx := range ordered {
		lane := segment.Lanes[idx]
		leftPoints, err := sampleBoundary(lane, SIDE_LEFT, numSamples)
		if err != nil {
			return nil, err
		}
		ref := LaneBoundaryRef{}
		if pos == 0 {
			ref.LeftBoundaryID = registerBoundary(leftPoints)
		} else {
			shared, _ := result.BoundaryByID(prevRightID)
			switch matchBoundaries(shared.Points, leftPoints, tolerance) {
			case MATCH_SAME_DIRECTION:
				ref.LeftBoundaryID = prevRightID
			case MATCH_REVERSED:
				ref.LeftBoundaryID = prevRightID
				ref.LeftInverted = true
			default:
				ref.LeftBoundaryID = registerBoundary(leftPoints)
				result.Fallbacks = append(result.Fallbacks, MismatchFallback{
					SegmentID:  segment.ID,
					LaneID:     lane.ID,
					PrevLaneID: prevLaneID,
				})
			}
		}
		rightPoints, err := sampleBoundary(lane, SIDE_RIGHT, numSamples)
		if err != nil {
			return nil, err
		}
		ref.RightBoundaryID = registerBoundary(rightPoints)
		result.LaneRefs[lane.ID] = ref
		prevRightID = ref.RightBoundaryID
		prevLaneID = lane.ID
	}
	return result, nil
}
