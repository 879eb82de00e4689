package road2gpkg

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Vector3 representation of point in the conversion's Cartesian frame
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// String returns pretty printed value for Vector3
func (v Vector3) String() string {
	return fmt.Sprintf("X: %f | Y: %f | Z: %f", v.X, v.Y, v.Z)
}

// findDistance returns Euclidean distance between two points
func findDistance(p, q Vector3) float64 {
	xdistance := p.X - q.X
	ydistance := p.Y - q.Y
	zdistance := p.Z - q.Z
	return math.Sqrt(xdistance*xdistance + ydistance*ydistance + zdistance*zdistance)
}

// getLength returns length for given line
func getLength(line []Vector3) float64 {
	totalLength := 0.0
	if len(line) < 2 {
		return totalLength
	}
	for i := 1; i < len(line); i++ {
		totalLength += findDistance(line[i-1], line[i])
	}
	return totalLength
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(pts []Vector3) []Vector3 {
	inputLen := len(pts)
	output := make([]Vector3, inputLen)
	for i, n := range pts {
		j := inputLen - i - 1
		output[j] = n
	}
	return output
}

// copyLine copies points of given line. Returns new slice
func copyLine(pts []Vector3) []Vector3 {
	inputLen := len(pts)
	output := make([]Vector3, inputLen)
	for i, n := range pts {
		output[i] = n
	}
	return output
}

// reverseLineInPlace reverses order of points in given line
func reverseLineInPlace(pts []Vector3) {
	inputLen := len(pts)
	inputMid := inputLen / 2
	for i := 0; i < inputMid; i++ {
		j := inputLen - i - 1
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// lineBound returns planar bounding box of given line (Z is dropped).
// Line must not be empty
func lineBound(line []Vector3) orb.Bound {
	first := orb.Point{line[0].X, line[0].Y}
	bound := orb.Bound{Min: first, Max: first}
	for _, pt := range line[1:] {
		bound = bound.Extend(orb.Point{pt.X, pt.Y})
	}
	return bound
}
