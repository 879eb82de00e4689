package road2gpkg

import (
	"testing"
)

func TestPrepareWKTLinestring(t *testing.T) {
	line := []Vector3{
		{X: 1.5, Y: 2.5, Z: 3.5},
		{X: 4.0, Y: 5.0, Z: 6.0},
	}
	correct := "LINESTRING Z(1.500000 2.500000 3.500000,4.000000 5.000000 6.000000)"
	got := PrepareWKTLinestring(line)
	if got != correct {
		t.Errorf("WKT linestring must be '%s', but got '%s'", correct, got)
	}
}

func TestPrepareWKTPoint(t *testing.T) {
	correct := "POINT Z(1.500000 2.500000 3.500000)"
	got := PrepareWKTPoint(Vector3{X: 1.5, Y: 2.5, Z: 3.5})
	if got != correct {
		t.Errorf("WKT point must be '%s', but got '%s'", correct, got)
	}
}
