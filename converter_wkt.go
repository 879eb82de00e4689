package road2gpkg

import (
	"fmt"
	"strings"
)

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(pts []Vector3) string {
	ptsStr := make([]string, len(pts))
	for i := range pts {
		ptsStr[i] = fmt.Sprintf("%f %f %f", pts[i].X, pts[i].Y, pts[i].Z)
	}
	return fmt.Sprintf("LINESTRING Z(%s)", strings.Join(ptsStr, ","))
}

// PrepareWKTPoint returns WKT representation of Point
func PrepareWKTPoint(pt Vector3) string {
	return fmt.Sprintf("POINT Z(%f %f %f)", pt.X, pt.Y, pt.Z)
}
