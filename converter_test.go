package road2gpkg

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// rowLog records every writer call as a flat string so whole conversion
// streams can be compared
type rowLog struct {
	rows      []string
	committed bool
	failOn    string
}

func (log *rowLog) mark(row string) error {
	log.rows = append(log.rows, row)
	if log.failOn != "" && strings.HasPrefix(row, log.failOn) {
		return fmt.Errorf("forced failure on %s", row)
	}
	return nil
}

func (log *rowLog) PutMetadata(key, value string) error {
	return log.mark(fmt.Sprintf("metadata|%s|%s", key, value))
}

func (log *rowLog) AddJunction(id, name string) error {
	return log.mark(fmt.Sprintf("junction|%s|%s", id, name))
}

func (log *rowLog) AddSegment(id, junctionID, name string) error {
	return log.mark(fmt.Sprintf("segment|%s|%s|%s", id, junctionID, name))
}

func (log *rowLog) AddBoundary(id string, geometry []byte) error {
	return log.mark(fmt.Sprintf("boundary|%s|%d", id, len(geometry)))
}

func (log *rowLog) AddLane(row LaneRow) error {
	return log.mark(fmt.Sprintf("lane|%s|%s|%s|%s|%s|%t|%s|%t",
		row.LaneID, row.SegmentID, row.LaneType, row.Direction,
		row.Ref.LeftBoundaryID, row.Ref.LeftInverted,
		row.Ref.RightBoundaryID, row.Ref.RightInverted,
	))
}

func (log *rowLog) AddBranchPointLane(row BranchPointRow) error {
	return log.mark(fmt.Sprintf("branch|%s|%s|%s|%s", row.BranchPointID, row.LaneID, row.Side, row.End))
}

func (log *rowLog) Commit() error {
	log.committed = true
	return nil
}

func (log *rowLog) Close() error {
	return nil
}

func TestConvertTwoLaneRowStream(t *testing.T) {
	writer := &rowLog{}
	converter := NewConverter(SampleTwoLaneRoad())
	stats, err := converter.Convert(writer)
	if err != nil {
		t.Error(err)
		return
	}
	correct := []string{
		"metadata|linear_tolerance|0.05",
		"metadata|angular_tolerance|0.001",
		"junction|j1|Main Junction",
		"segment|seg1|j1|Straight Segment",
		"boundary|seg1_b0|1217",
		"boundary|seg1_b1|1217",
		"boundary|seg1_b2|1217",
		"lane|lane_1|seg1|driving|forward|seg1_b0|false|seg1_b1|false",
		"lane|lane_2|seg1|driving|forward|seg1_b1|false|seg1_b2|false",
		"branch|bp_start|lane_1|a|start",
		"branch|bp_start|lane_2|a|start",
		"branch|bp_end|lane_1|b|finish",
		"branch|bp_end|lane_2|b|finish",
	}
	if len(writer.rows) != len(correct) {
		t.Errorf("Conversion must produce %d rows, but got %d:\n%s", len(correct), len(writer.rows), strings.Join(writer.rows, "\n"))
		return
	}
	for i := range correct {
		if writer.rows[i] != correct[i] {
			t.Errorf("Row %d must be '%s', but got '%s'", i, correct[i], writer.rows[i])
		}
	}
	if !writer.committed {
		t.Errorf("Successful conversion must commit the writer")
	}
	if stats.Junctions != 1 || stats.Segments != 1 || stats.Lanes != 2 || stats.Boundaries != 3 || stats.BranchPointRows != 4 || stats.MismatchFallbacks != 0 {
		t.Errorf("Stats must count 1/1/2/3/4/0, but got %+v", stats)
	}
}

func TestConvertComplexStats(t *testing.T) {
	writer := &rowLog{}
	converter := NewConverter(SampleComplexRoad())
	stats, err := converter.Convert(writer)
	if err != nil {
		t.Error(err)
		return
	}
	if stats.Junctions != 2 {
		t.Errorf("Stats must count 2 junctions, but got %d", stats.Junctions)
	}
	if stats.Segments != 4 {
		t.Errorf("Stats must count 4 segments, but got %d", stats.Segments)
	}
	if stats.Lanes != 8 {
		t.Errorf("Stats must count 8 lanes, but got %d", stats.Lanes)
	}
	if stats.Boundaries != 12 {
		t.Errorf("Stats must count 12 boundaries, but got %d", stats.Boundaries)
	}
	if stats.BranchPointRows != 16 {
		t.Errorf("Stats must count 16 branch point rows, but got %d", stats.BranchPointRows)
	}
	if stats.MismatchFallbacks != 0 {
		t.Errorf("Fixture road must convert without fallbacks, but got %d", stats.MismatchFallbacks)
	}
}

func TestConvertDeterministicAcrossWorkers(t *testing.T) {
	sequential := &rowLog{}
	_, err := NewConverter(SampleComplexRoad()).Convert(sequential)
	if err != nil {
		t.Error(err)
		return
	}
	parallel := &rowLog{}
	_, err = NewConverter(SampleComplexRoad(), WithWorkers(4)).Convert(parallel)
	if err != nil {
		t.Error(err)
		return
	}
	if len(sequential.rows) != len(parallel.rows) {
		t.Errorf("Worker count must not change the row count: %d against %d", len(sequential.rows), len(parallel.rows))
		return
	}
	for i := range sequential.rows {
		if sequential.rows[i] != parallel.rows[i] {
			t.Errorf("Row %d must not depend on the worker count: '%s' against '%s'", i, sequential.rows[i], parallel.rows[i])
		}
	}
}

func TestConvertRejectsBadInputs(t *testing.T) {
	writer := &rowLog{}
	if _, err := NewConverter(nil).Convert(writer); err == nil {
		t.Errorf("Nil model must be rejected")
	}
	if _, err := NewConverter(SampleTwoLaneRoad(), WithNumSamples(1)).Convert(writer); err == nil {
		t.Errorf("Single sample must be rejected")
	}
	if len(writer.rows) != 0 {
		t.Errorf("Rejected conversions must not write rows, but got %v", writer.rows)
	}
}

func TestConvertAbortsOnWriterError(t *testing.T) {
	writer := &rowLog{failOn: "lane|"}
	_, err := NewConverter(SampleTwoLaneRoad()).Convert(writer)
	if err == nil {
		t.Errorf("Writer failure must abort the conversion")
	}
	if writer.committed {
		t.Errorf("Failed conversion must not commit the writer")
	}
}

func TestConvertWarnsOnFallback(t *testing.T) {
	laneA := NewLane("lane_a", edgeCurve{
		leftStart:  Vector3{Y: 1.0},
		leftEnd:    Vector3{X: 10.0, Y: 1.0},
		rightStart: Vector3{},
		rightEnd:   Vector3{X: 10.0},
		length:     10.0,
	})
	laneB := NewLane("lane_b", edgeCurve{
		leftStart:  Vector3{Y: -5.0},
		leftEnd:    Vector3{X: 10.0, Y: -5.0},
		rightStart: Vector3{Y: -6.0},
		rightEnd:   Vector3{X: 10.0, Y: -6.0},
		length:     10.0,
	})
	segment := &Segment{ID: "seg_gap", Lanes: []*Lane{laneA, laneB}}
	segment.Chain(0, 1)
	model := &RoadModel{
		ID:        "gapped",
		Junctions: []*Junction{{ID: "j1", Segments: []*Segment{segment}}},
	}

	core, logs := observer.New(zap.WarnLevel)
	writer := &rowLog{}
	stats, err := NewConverter(model, WithLogger(zap.New(core))).Convert(writer)
	if err != nil {
		t.Error(err)
		return
	}
	if stats.MismatchFallbacks != 1 {
		t.Errorf("Stats must count 1 fallback, but got %d", stats.MismatchFallbacks)
	}
	if stats.Boundaries != 4 {
		t.Errorf("Fallback must leave a duplicate boundary, 4 in total, but got %d", stats.Boundaries)
	}
	warnings := logs.FilterMessage("Adjacent lane boundaries did not match, stored a duplicate boundary").All()
	if len(warnings) != 1 {
		t.Errorf("One fallback warning must be logged, but got %d", len(warnings))
		return
	}
	fields := warnings[0].ContextMap()
	if fields["segment_id"] != "seg_gap" || fields["lane_id"] != "lane_b" || fields["previous_lane_id"] != "lane_a" {
		t.Errorf("Warning must name the mismatched lanes, but got %v", fields)
	}
}

func TestConvertMetadataOptions(t *testing.T) {
	writer := &rowLog{}
	converter := NewConverter(
		SampleTwoLaneRoad(),
		WithLinearTolerance(0.01),
		WithAngularTolerance(0.005),
		WithSourceFormat("builtin"),
		WithSourceFile("two_lane"),
		WithMetadata(map[string]string{"b_key": "2", "a_key": "1"}),
	)
	if _, err := converter.Convert(writer); err != nil {
		t.Error(err)
		return
	}
	correct := []string{
		"metadata|linear_tolerance|0.01",
		"metadata|angular_tolerance|0.005",
		"metadata|source_format|builtin",
		"metadata|source_file|two_lane",
		"metadata|a_key|1",
		"metadata|b_key|2",
	}
	for i := range correct {
		if writer.rows[i] != correct[i] {
			t.Errorf("Metadata row %d must be '%s', but got '%s'", i, correct[i], writer.rows[i])
		}
	}
}
