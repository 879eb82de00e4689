package road2gpkg

import (
	"math"
)

/* Built-in road model backends */

// LineCurve is a straight lane centerline at a constant heading with a
// constant lane width
type LineCurve struct {
	Start     Vector3
	Heading   float64 // radians, counter-clockwise from the X axis
	Len       float64
	HalfWidth float64
}

// Length returns lane length in world units
func (curve LineCurve) Length() float64 {
	return curve.Len
}

// LateralBounds returns the constant lateral extents of the lane
func (curve LineCurve) LateralBounds(s float64) (float64, float64) {
	return -curve.HalfWidth, curve.HalfWidth
}

// ToWorld maps lane frame coordinates to a world point. Positive r moves to
// the left of the travel direction
func (curve LineCurve) ToWorld(s, r, h float64) Vector3 {
	sin, cos := math.Sincos(curve.Heading)
	return Vector3{
		X: curve.Start.X + s*cos - r*sin,
		Y: curve.Start.Y + s*sin + r*cos,
		Z: curve.Start.Z + h,
	}
}

// ArcCurve is a circular arc lane centerline with a constant lane width.
// Positive Sweep turns left (counter-clockwise), negative turns right
type ArcCurve struct {
	Center     Vector3
	Radius     float64 // radius of the lane centerline
	StartAngle float64 // radians, position of s = 0 on the circle
	Sweep      float64 // radians, signed
	HalfWidth  float64
}

// Length returns lane length in world units
func (curve ArcCurve) Length() float64 {
	return math.Abs(curve.Sweep) * curve.Radius
}

// LateralBounds returns the constant lateral extents of the lane
func (curve ArcCurve) LateralBounds(s float64) (float64, float64) {
	return -curve.HalfWidth, curve.HalfWidth
}

// ToWorld maps lane frame coordinates to a world point. On a left turn
// positive r moves towards the arc center, on a right turn away from it
func (curve ArcCurve) ToWorld(s, r, h float64) Vector3 {
	angle := curve.StartAngle
	if length := curve.Length(); length > 0 {
		angle += curve.Sweep * s / length
	}
	radius := curve.Radius - r
	if curve.Sweep < 0 {
		radius = curve.Radius + r
	}
	sin, cos := math.Sincos(angle)
	return Vector3{
		X: curve.Center.X + radius*cos,
		Y: curve.Center.Y + radius*sin,
		Z: curve.Center.Z + h,
	}
}

// SampleTwoLaneRoad returns the smallest model exercising boundary sharing:
// one junction with one straight 100 meter segment of two parallel lanes
func SampleTwoLaneRoad() *RoadModel {
	const (
		roadLength = 100.0
		laneWidth  = 3.5
	)
	segment := &Segment{
		ID:   "seg1",
		Name: "Straight Segment",
		Lanes: []*Lane{
			NewLane("lane_1", LineCurve{Start: Vector3{Y: laneWidth / 2}, Len: roadLength, HalfWidth: laneWidth / 2}),
			NewLane("lane_2", LineCurve{Start: Vector3{Y: -laneWidth / 2}, Len: roadLength, HalfWidth: laneWidth / 2}),
		},
	}
	segment.Chain(0, 1)
	return &RoadModel{
		ID: "two_lane_road",
		Junctions: []*Junction{
			{ID: "j1", Name: "Main Junction", Segments: []*Segment{segment}},
		},
		BranchPoints: []*BranchPoint{
			{ID: "bp_start", ASide: []LaneEnd{
				{LaneID: "lane_1", End: LANE_END_START},
				{LaneID: "lane_2", End: LANE_END_START},
			}},
			{ID: "bp_end", BSide: []LaneEnd{
				{LaneID: "lane_1", End: LANE_END_FINISH},
				{LaneID: "lane_2", End: LANE_END_FINISH},
			}},
		},
	}
}

// SampleComplexRoad returns a four segment highway stretch across two
// junctions: a straight two lane entry, a three lane left curve, a two lane
// interchange and a single lane exit ramp. Lane counts change between
// segments and the road center shifts at the interchange, so connectivity
// lives entirely in the branch points
func SampleComplexRoad() *RoadModel {
	const (
		laneWidth   = 3.5
		half        = laneWidth / 2
		seg1Length  = 100.0
		curveRadius = 500.0
		curveLength = 200.0
		seg3Length  = 100.0
		seg4Length  = 100.0
	)

	seg1 := &Segment{
		ID:   "seg1",
		Name: "Straight Entry",
		Lanes: []*Lane{
			NewLane("seg1_lane1", LineCurve{Start: Vector3{Y: half}, Len: seg1Length, HalfWidth: half}),
			NewLane("seg1_lane2", LineCurve{Start: Vector3{Y: -half}, Len: seg1Length, HalfWidth: half}),
		},
	}
	seg1.Chain(0, 1)

	// The curve continues the entry's reference line: its center sits
	// curveRadius to the left of the pose (seg1Length, 0) heading +X. The
	// leftmost lane is the innermost one
	arcCenter := Vector3{X: seg1Length, Y: curveRadius}
	startAngle := -math.Pi / 2
	sweep := curveLength / curveRadius
	seg2 := &Segment{
		ID:   "seg2",
		Name: "Left Curve",
		Lanes: []*Lane{
			NewLane("seg2_lane1", ArcCurve{Center: arcCenter, Radius: curveRadius - half, StartAngle: startAngle, Sweep: sweep, HalfWidth: half}),
			NewLane("seg2_lane2", ArcCurve{Center: arcCenter, Radius: curveRadius + half, StartAngle: startAngle, Sweep: sweep, HalfWidth: half}),
			NewLane("seg2_lane3", ArcCurve{Center: arcCenter, Radius: curveRadius + laneWidth + half, StartAngle: startAngle, Sweep: sweep, HalfWidth: half}),
		},
	}
	seg2.Chain(0, 1, 2)

	// Going from three lanes down to two, the interchange reference line is
	// shifted half a lane to the right to keep the road centered
	endAngle := startAngle + sweep
	sinEnd, cosEnd := math.Sincos(endAngle)
	seg3Ref := LineCurve{
		Start: Vector3{
			X: arcCenter.X + (curveRadius+half)*cosEnd,
			Y: arcCenter.Y + (curveRadius+half)*sinEnd,
		},
		Heading:   sweep,
		Len:       seg3Length,
		HalfWidth: laneWidth,
	}
	seg3 := &Segment{
		ID:   "seg3",
		Name: "Interchange",
		Lanes: []*Lane{
			NewLane("seg3_lane1", LineCurve{Start: seg3Ref.ToWorld(0, half, 0), Heading: sweep, Len: seg3Length, HalfWidth: half}),
			NewLane("seg3_lane2", LineCurve{Start: seg3Ref.ToWorld(0, -half, 0), Heading: sweep, Len: seg3Length, HalfWidth: half}),
		},
	}
	seg3.Chain(0, 1)

	seg4 := &Segment{
		ID:   "seg4",
		Name: "Exit Ramp",
		Lanes: []*Lane{
			NewLane("seg4_lane1", LineCurve{Start: seg3Ref.ToWorld(seg3Length, 0, 0), Heading: sweep, Len: seg4Length, HalfWidth: half}),
		},
	}
	seg4.Chain(0)

	return &RoadModel{
		ID: "complex_road",
		Junctions: []*Junction{
			{ID: "j1", Name: "Main Highway", Segments: []*Segment{seg1, seg2}},
			{ID: "j2", Name: "Interchange", Segments: []*Segment{seg3, seg4}},
		},
		BranchPoints: []*BranchPoint{
			{ID: "bp_seg1_start", ASide: []LaneEnd{
				{LaneID: "seg1_lane1", End: LANE_END_START},
				{LaneID: "seg1_lane2", End: LANE_END_START},
			}},
			{ID: "bp_seg1_end", BSide: []LaneEnd{
				{LaneID: "seg1_lane1", End: LANE_END_FINISH},
				{LaneID: "seg1_lane2", End: LANE_END_FINISH},
			}},
			{ID: "bp_seg2_start", ASide: []LaneEnd{
				{LaneID: "seg2_lane1", End: LANE_END_START},
				{LaneID: "seg2_lane2", End: LANE_END_START},
				{LaneID: "seg2_lane3", End: LANE_END_START},
			}},
			{ID: "bp_seg2_end", BSide: []LaneEnd{
				{LaneID: "seg2_lane1", End: LANE_END_FINISH},
				{LaneID: "seg2_lane2", End: LANE_END_FINISH},
				{LaneID: "seg2_lane3", End: LANE_END_FINISH},
			}},
			{ID: "bp_seg3_start", ASide: []LaneEnd{
				{LaneID: "seg3_lane1", End: LANE_END_START},
				{LaneID: "seg3_lane2", End: LANE_END_START},
			}},
			{ID: "bp_seg3_end", BSide: []LaneEnd{
				{LaneID: "seg3_lane1", End: LANE_END_FINISH},
				{LaneID: "seg3_lane2", End: LANE_END_FINISH},
			}},
			{ID: "bp_seg4_start", ASide: []LaneEnd{
				{LaneID: "seg4_lane1", End: LANE_END_START},
			}},
			{ID: "bp_seg4_end", BSide: []LaneEnd{
				{LaneID: "seg4_lane1", End: LANE_END_FINISH},
			}},
		},
	}
}
