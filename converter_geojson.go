package road2gpkg

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(pts []Vector3) string {
	pts3d := make([][]float64, len(pts))
	for i := range pts {
		pts3d[i] = []float64{pts[i].X, pts[i].Y, pts[i].Z}
	}
	b, err := geojson.NewLineStringGeometry(pts3d).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt Vector3) string {
	b, err := geojson.NewPointGeometry([]float64{pt.X, pt.Y, pt.Z}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}
