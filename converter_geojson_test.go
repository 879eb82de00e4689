package road2gpkg

import (
	"encoding/json"
	"testing"
)

func TestPrepareGeoJSONLinestring(t *testing.T) {
	line := []Vector3{
		{X: 1.5, Y: 2.5, Z: 3.5},
		{X: 4.0, Y: 5.0, Z: 6.0},
	}
	var decoded struct {
		Type        string      `json:"type"`
		Coordinates [][]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal([]byte(PrepareGeoJSONLinestring(line)), &decoded); err != nil {
		t.Error(err)
		return
	}
	if decoded.Type != "LineString" {
		t.Errorf("Geometry type must be LineString, but got %s", decoded.Type)
	}
	if len(decoded.Coordinates) != 2 {
		t.Errorf("Geometry must keep 2 positions, but got %d", len(decoded.Coordinates))
		return
	}
	correct := []float64{1.5, 2.5, 3.5}
	for i := range correct {
		if decoded.Coordinates[0][i] != correct[i] {
			t.Errorf("First position must be %v, but got %v", correct, decoded.Coordinates[0])
			break
		}
	}
}

func TestPrepareGeoJSONPoint(t *testing.T) {
	var decoded struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	if err := json.Unmarshal([]byte(PrepareGeoJSONPoint(Vector3{X: 1.5, Y: 2.5, Z: 3.5})), &decoded); err != nil {
		t.Error(err)
		return
	}
	if decoded.Type != "Point" {
		t.Errorf("Geometry type must be Point, but got %s", decoded.Type)
	}
	if len(decoded.Coordinates) != 3 || decoded.Coordinates[2] != 3.5 {
		t.Errorf("Point must keep its Z value, but got %v", decoded.Coordinates)
	}
}
