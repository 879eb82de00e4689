package road2gpkg

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

/* GeoPackage geometry blob stuff */

// DefaultSRSID identifies the local Cartesian frame conversions run in
const DefaultSRSID int32 = 100000

const (
	gpkgVersion = 0
	// header flags: bit 0 set means little-endian, bits 1-3 keep the
	// envelope contents indicator (0 for no envelope)
	gpkgFlagsLENoEnvelope = 0x01

	wkbMFlag        = 0x40000000
	wkbBaseTypeMask = 0x0FFFFFFF
	wkbLineString   = 2

	gpkgHeaderSize = 8
	wkbPreludeSize = 5
)

// envelopeSizes maps the envelope contents indicator to envelope byte size
var envelopeSizes = [5]int{0, 32, 48, 48, 64}

// EncodeLineString serializes a 3D polyline into a GeoPackage geometry
// blob: an 8 byte header carrying magic, version, flags and SRS ID followed
// by a little-endian WKB LINESTRING Z payload. The blob size is always
// 17 + 24*n bytes for n points. Sequences shorter than 2 points are
// rejected with ErrInvalidGeometry.
func EncodeLineString(points []Vector3, srsID int32) ([]byte, error) {
	if len(points) < 2 {
		return nil, errors.Wrapf(ErrInvalidGeometry, "got %d points", len(points))
	}
	flat := make([]float64, 0, len(points)*3)
	for _, pt := range points {
		flat = append(flat, pt.X, pt.Y, pt.Z)
	}
	payload, err := ewkb.Marshal(geom.NewLineStringFlat(geom.XYZ, flat), binary.LittleEndian)
	if err != nil {
		return nil, errors.Wrap(err, "Can't marshal WKB payload")
	}
	blob := make([]byte, gpkgHeaderSize, gpkgHeaderSize+len(payload))
	blob[0] = 'G'
	blob[1] = 'P'
	blob[2] = gpkgVersion
	blob[3] = gpkgFlagsLENoEnvelope
	binary.LittleEndian.PutUint32(blob[4:8], uint32(srsID))
	return append(blob, payload...), nil
}

// DecodeLineString parses a GeoPackage geometry blob back into a polyline
// and its SRS ID. Blobs carrying an envelope are accepted, the envelope is
// skipped. Payloads without the Z dimension decode with Z = 0. Big-endian
// payloads, measured geometries and types other than LINESTRING are
// rejected.
func DecodeLineString(blob []byte) ([]Vector3, int32, error) {
	if len(blob) < gpkgHeaderSize {
		return nil, 0, fmt.Errorf("blob of %d bytes is shorter than the header", len(blob))
	}
	if blob[0] != 'G' || blob[1] != 'P' {
		return nil, 0, fmt.Errorf("bad magic 0x%02x%02x", blob[0], blob[1])
	}
	if blob[2] != gpkgVersion {
		return nil, 0, fmt.Errorf("unsupported blob version %d", blob[2])
	}
	srsID := int32(binary.LittleEndian.Uint32(blob[4:8]))
	envelopeIndicator := int((blob[3] >> 1) & 0x07)
	if envelopeIndicator >= len(envelopeSizes) {
		return nil, 0, fmt.Errorf("invalid envelope indicator %d", envelopeIndicator)
	}
	payloadStart := gpkgHeaderSize + envelopeSizes[envelopeIndicator]
	if len(blob) < payloadStart+wkbPreludeSize {
		return nil, 0, fmt.Errorf("WKB payload is truncated")
	}
	payload := blob[payloadStart:]
	if payload[0] != 1 {
		return nil, 0, fmt.Errorf("unsupported WKB byte order %d", payload[0])
	}
	wkbType := binary.LittleEndian.Uint32(payload[1:wkbPreludeSize])
	if wkbType&wkbMFlag != 0 {
		return nil, 0, fmt.Errorf("measured geometries are not supported")
	}
	if wkbType&wkbBaseTypeMask != wkbLineString {
		return nil, 0, fmt.Errorf("geometry type %d is not a linestring", wkbType&wkbBaseTypeMask)
	}
	parsed, err := ewkb.Unmarshal(payload)
	if err != nil {
		return nil, 0, errors.Wrap(err, "Can't unmarshal WKB payload")
	}
	line, ok := parsed.(*geom.LineString)
	if !ok {
		return nil, 0, fmt.Errorf("unexpected geometry %T", parsed)
	}
	zIdx := line.Layout().ZIndex()
	points := make([]Vector3, line.NumCoords())
	for i := range points {
		coord := line.Coord(i)
		points[i] = Vector3{X: coord[0], Y: coord[1]}
		if zIdx >= 0 {
			points[i].Z = coord[zIdx]
		}
	}
	return points, srsID, nil
}
