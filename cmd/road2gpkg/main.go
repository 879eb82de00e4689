package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/routegeo/road2gpkg"
	"go.uber.org/zap"
)

var (
	modelName  = flag.String("model", "two_lane", "Built-in road model to convert. Expected values: two_lane / complex")
	out        = flag.String("out", "road.gpkg", "Filename of output GeoPackage container")
	numSamples = flag.Int("samples", road2gpkg.DefaultNumSamples, "Number of points per sampled lane boundary (at least 2)")
	srsID      = flag.Int("srs", int(road2gpkg.DefaultSRSID), "Spatial reference system identifier stored in the container")
	tolerance  = flag.Float64("tolerance", road2gpkg.DefaultMatchTolerance, "Distance tolerance for merging adjacent lane boundaries")
	workers    = flag.Int("workers", 1, "Number of segments sampled in parallel")
	preview    = flag.String("preview", "", "Dump sampled boundaries to CSV files aside the container. E.g.: if value is 'map.csv' then 2 files will be produced: 'map_boundaries.csv' and 'map_endpoints.csv'")
	geomFormat = flag.String("geomf", "wkt", "Format of preview geometry. Expected values: wkt / geojson")
	verbose    = flag.Bool("verbose", false, "Log conversion progress to stderr?")
)

func main() {

	flag.Parse()

	var model *road2gpkg.RoadModel
	switch strings.ToLower(*modelName) {
	case "two_lane":
		model = road2gpkg.SampleTwoLaneRoad()
	case "complex":
		model = road2gpkg.SampleComplexRoad()
	default:
		fmt.Printf("Unknown model '%s'. Expected values: two_lane / complex\n", *modelName)
		return
	}

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Println(err)
			return
		}
	}
	defer logger.Sync()

	writer, err := road2gpkg.NewGeoPackageWriter(*out, int32(*srsID))
	if err != nil {
		fmt.Println(err)
		return
	}

	converter := road2gpkg.NewConverter(
		model,
		road2gpkg.WithNumSamples(*numSamples),
		road2gpkg.WithSRSID(int32(*srsID)),
		road2gpkg.WithMatchTolerance(*tolerance),
		road2gpkg.WithWorkers(*workers),
		road2gpkg.WithLogger(logger),
		road2gpkg.WithSourceFormat("builtin"),
		road2gpkg.WithSourceFile(strings.ToLower(*modelName)),
	)

	capture := &boundaryCapture{ContainerWriter: writer}
	target := road2gpkg.ContainerWriter(writer)
	if *preview != "" {
		target = capture
	}

	st := time.Now()
	stats, err := converter.Convert(target)
	if err != nil {
		writer.Close()
		os.Remove(*out)
		fmt.Println(err)
		return
	}
	if err := writer.Close(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Wrote %d boundaries, %d lanes, %d branch point rows to '%s' in %v\n", stats.Boundaries, stats.Lanes, stats.BranchPointRows, *out, time.Since(st))

	if *preview != "" {
		if err := writePreview(capture); err != nil {
			fmt.Println(err)
			return
		}
	}
}

// boundaryCapture forwards every call to the wrapped container writer and
// keeps decoded boundary polylines around for the preview files
type boundaryCapture struct {
	road2gpkg.ContainerWriter
	ids   []string
	lines [][]road2gpkg.Vector3
}

func (capture *boundaryCapture) AddBoundary(boundaryID string, geometry []byte) error {
	line, _, err := road2gpkg.DecodeLineString(geometry)
	if err != nil {
		return err
	}
	capture.ids = append(capture.ids, boundaryID)
	capture.lines = append(capture.lines, line)
	return capture.ContainerWriter.AddBoundary(boundaryID, geometry)
}

func writePreview(capture *boundaryCapture) error {
	fnamePart := strings.Split(*preview, ".csv") // to guarantee proper filename and its extension
	fnameBoundaries := fnamePart[0] + "_boundaries.csv"
	fnameEndpoints := fnamePart[0] + "_endpoints.csv"

	/* Boundaries file */
	fileBoundaries, err := os.Create(fnameBoundaries)
	if err != nil {
		return err
	}
	defer fileBoundaries.Close()
	writerBoundaries := csv.NewWriter(fileBoundaries)
	defer writerBoundaries.Flush()
	writerBoundaries.Comma = ';'
	// 		boundary_id - string, ID of sampled lane boundary
	//      geom - geometry (WKT or GeoJSON representation)
	err = writerBoundaries.Write([]string{"boundary_id", "geom"})
	if err != nil {
		return err
	}

	endpointKeys := []string{}
	endpointGeoms := make(map[string]road2gpkg.Vector3)
	for i := range capture.ids {
		line := capture.lines[i]
		geomStr := ""
		if strings.ToLower(*geomFormat) == "geojson" {
			geomStr = road2gpkg.PrepareGeoJSONLinestring(line)
		} else {
			geomStr = road2gpkg.PrepareWKTLinestring(line)
		}

		for _, pt := range []road2gpkg.Vector3{line[0], line[len(line)-1]} {
			key := fmt.Sprintf("%.6f %.6f %.6f", pt.X, pt.Y, pt.Z)
			if _, ok := endpointGeoms[key]; !ok {
				endpointGeoms[key] = pt
				endpointKeys = append(endpointKeys, key)
			}
		}

		err = writerBoundaries.Write([]string{capture.ids[i], geomStr})
		if err != nil {
			return err
		}
	}

	/* Endpoints file */
	fileEndpoints, err := os.Create(fnameEndpoints)
	if err != nil {
		return err
	}
	defer fileEndpoints.Close()
	writerEndpoints := csv.NewWriter(fileEndpoints)
	defer writerEndpoints.Flush()
	writerEndpoints.Comma = ';'
	// 		endpoint_id - int, index of distinct boundary endpoint
	//      geom - geometry (WKT or GeoJSON representation)
	err = writerEndpoints.Write([]string{"endpoint_id", "geom"})
	if err != nil {
		return err
	}
	for i, key := range endpointKeys {
		pt := endpointGeoms[key]
		geomStr := ""
		if strings.ToLower(*geomFormat) == "geojson" {
			geomStr = road2gpkg.PrepareGeoJSONPoint(pt)
		} else {
			geomStr = road2gpkg.PrepareWKTPoint(pt)
		}
		err = writerEndpoints.Write([]string{fmt.Sprintf("%d", i), geomStr})
		if err != nil {
			return err
		}
	}
	return nil
}
