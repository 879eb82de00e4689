package road2gpkg

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultNumSamples is the number of points every boundary is sampled with
const DefaultNumSamples = 50

// ConversionStats summarizes one conversion run
type ConversionStats struct {
	Junctions         int
	Segments          int
	Lanes             int
	Boundaries        int
	BranchPointRows   int
	MismatchFallbacks int
}

// Converter reconciles a road model into container rows: metadata,
// junctions, segments, deduplicated boundaries with encoded geometry, lane
// references and branch point memberships
type Converter struct {
	model            *RoadModel
	numSamples       int
	srsID            int32
	matchTolerance   float64
	linearTolerance  float64
	angularTolerance float64
	workers          int
	sourceFormat     string
	sourceFile       string
	metadata         map[string]string
	log              *zap.Logger
}

// NewConverter creates a converter for the given road model
func NewConverter(model *RoadModel, options ...func(*Converter)) *Converter {
	converter := &Converter{
		model:            model,
		numSamples:       DefaultNumSamples,
		srsID:            DefaultSRSID,
		matchTolerance:   DefaultMatchTolerance,
		linearTolerance:  DefaultLinearTolerance,
		angularTolerance: DefaultAngularTolerance,
		workers:          1,
		log:              zap.NewNop(),
	}
	for _, option := range options {
		option(converter)
	}
	return converter
}

// WithNumSamples sets the number of points per sampled boundary (at least 2)
func WithNumSamples(numSamples int) func(*Converter) {
	return func(converter *Converter) {
		converter.numSamples = numSamples
	}
}

// WithSRSID sets the spatial reference the container is registered with
func WithSRSID(srsID int32) func(*Converter) {
	return func(converter *Converter) {
		converter.srsID = srsID
	}
}

// WithMatchTolerance sets the endpoint distance under which adjacent lane
// edges collapse into one boundary
func WithMatchTolerance(tolerance float64) func(*Converter) {
	return func(converter *Converter) {
		converter.matchTolerance = tolerance
	}
}

// WithLinearTolerance sets the advisory linear tolerance stored in metadata
func WithLinearTolerance(tolerance float64) func(*Converter) {
	return func(converter *Converter) {
		converter.linearTolerance = tolerance
	}
}

// WithAngularTolerance sets the advisory angular tolerance stored in metadata
func WithAngularTolerance(tolerance float64) func(*Converter) {
	return func(converter *Converter) {
		converter.angularTolerance = tolerance
	}
}

// WithWorkers sets how many segments are reconciled in parallel. Values
// below 2 keep the conversion sequential
func WithWorkers(workers int) func(*Converter) {
	return func(converter *Converter) {
		converter.workers = workers
	}
}

// WithSourceFormat records the format the road model was loaded from
func WithSourceFormat(sourceFormat string) func(*Converter) {
	return func(converter *Converter) {
		converter.sourceFormat = sourceFormat
	}
}

// WithSourceFile records the file the road model was loaded from
func WithSourceFile(sourceFile string) func(*Converter) {
	return func(converter *Converter) {
		converter.sourceFile = sourceFile
	}
}

// WithMetadata adds extra metadata pairs to store in the container
func WithMetadata(metadata map[string]string) func(*Converter) {
	return func(converter *Converter) {
		converter.metadata = metadata
	}
}

// WithLogger sets the logger, zap.NewNop() is used by default
func WithLogger(log *zap.Logger) func(*Converter) {
	return func(converter *Converter) {
		converter.log = log
	}
}

// Convert reconciles the whole road model and streams the rows into the
// writer in a deterministic order: metadata, then junction by junction its
// segments with their boundaries and lanes, then branch point rows. On
// success the writer's transaction is committed; on any error nothing is
// committed and the error is returned. Closing the writer stays with the
// caller.
func (converter *Converter) Convert(writer ContainerWriter) (ConversionStats, error) {
	stats := ConversionStats{}
	if converter.model == nil {
		return stats, fmt.Errorf("road model is nil")
	}
	if converter.numSamples < 2 {
		return stats, fmt.Errorf("number of samples must be at least 2, got %d", converter.numSamples)
	}
	if err := converter.model.Validate(); err != nil {
		return stats, err
	}

	st := time.Now()
	jobs := []*Segment{}
	for _, junction := range converter.model.Junctions {
		jobs = append(jobs, junction.Segments...)
	}
	converter.log.Info("Converting road model",
		zap.String("road_model_id", converter.model.ID),
		zap.Int("junctions", len(converter.model.Junctions)),
		zap.Int("segments", len(jobs)),
		zap.Int("num_samples", converter.numSamples),
		zap.Int("workers", converter.workers),
	)

	// Branch points only read the model, so they are extracted while
	// segment workers run
	branchRowsDone := make(chan []BranchPointRow, 1)
	go func() {
		branchRowsDone <- extractBranchPoints(converter.model)
	}()

	results := make([]*SegmentBoundaries, len(jobs))
	buildErrors := make([]error, len(jobs))
	workers := converter.workers
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	jobIndexes := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobIndexes {
				results[idx], buildErrors[idx] = buildSegmentBoundaries(jobs[idx], converter.numSamples, converter.matchTolerance)
			}
		}()
	}
	for idx := range jobs {
		jobIndexes <- idx
	}
	close(jobIndexes)
	wg.Wait()
	branchRows := <-branchRowsDone

	// First failed segment in model order wins so reruns fail identically
	for _, err := range buildErrors {
		if err != nil {
			return stats, err
		}
	}

	if err := converter.writeMetadata(writer); err != nil {
		return stats, err
	}
	jobIdx := 0
	for _, junction := range converter.model.Junctions {
		if err := writer.AddJunction(junction.ID, junction.Name); err != nil {
			return stats, err
		}
		stats.Junctions++
		for _, segment := range junction.Segments {
			if err := writer.AddSegment(segment.ID, junction.ID, segment.Name); err != nil {
				return stats, err
			}
			stats.Segments++
			result := results[jobIdx]
			jobIdx++
			for _, boundary := range result.Boundaries {
				blob, err := EncodeLineString(boundary.Points, converter.srsID)
				if err != nil {
					return stats, err
				}
				if err := writer.AddBoundary(boundary.ID, blob); err != nil {
					return stats, err
				}
				stats.Boundaries++
			}
			for _, lane := range segment.Lanes {
				row := LaneRow{
					LaneID:    lane.ID,
					SegmentID: segment.ID,
					LaneType:  lane.Type,
					Direction: lane.Direction,
					Ref:       result.LaneRefs[lane.ID],
				}
				if row.LaneType == "" {
					row.LaneType = defaultLaneType
				}
				if row.Direction == "" {
					row.Direction = defaultLaneDirection
				}
				if err := writer.AddLane(row); err != nil {
					return stats, err
				}
				stats.Lanes++
			}
			for _, fallback := range result.Fallbacks {
				converter.log.Warn("Adjacent lane boundaries did not match, stored a duplicate boundary",
					zap.String("segment_id", fallback.SegmentID),
					zap.String("lane_id", fallback.LaneID),
					zap.String("previous_lane_id", fallback.PrevLaneID),
					zap.Float64("match_tolerance", converter.matchTolerance),
				)
				stats.MismatchFallbacks++
			}
		}
	}
	for _, row := range branchRows {
		if err := writer.AddBranchPointLane(row); err != nil {
			return stats, err
		}
		stats.BranchPointRows++
	}
	if err := writer.Commit(); err != nil {
		return stats, err
	}
	converter.log.Info("Road model converted",
		zap.Int("junctions", stats.Junctions),
		zap.Int("segments", stats.Segments),
		zap.Int("lanes", stats.Lanes),
		zap.Int("boundaries", stats.Boundaries),
		zap.Int("branch_point_rows", stats.BranchPointRows),
		zap.Int("mismatch_fallbacks", stats.MismatchFallbacks),
		zap.Duration("elapsed", time.Since(st)),
	)
	return stats, nil
}

func (converter *Converter) writeMetadata(writer ContainerWriter) error {
	if err := writer.PutMetadata(metaLinearTolerance, fmt.Sprintf("%g", converter.linearTolerance)); err != nil {
		return err
	}
	if err := writer.PutMetadata(metaAngularTolerance, fmt.Sprintf("%g", converter.angularTolerance)); err != nil {
		return err
	}
	if converter.sourceFormat != "" {
		if err := writer.PutMetadata(metaSourceFormat, converter.sourceFormat); err != nil {
			return err
		}
	}
	if converter.sourceFile != "" {
		if err := writer.PutMetadata(metaSourceFile, converter.sourceFile); err != nil {
			return err
		}
	}
	keys := make([]string, 0, len(converter.metadata))
	for key := range converter.metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := writer.PutMetadata(key, converter.metadata[key]); err != nil {
			return err
		}
	}
	return nil
}
