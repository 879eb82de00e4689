package road2gpkg

import (
	"database/sql"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

/* Container writer stuff */

const (
	gpkgApplicationID = 0x47504B47 // "GPKG"
	gpkgUserVersion   = 10300      // GeoPackage 1.3.0
)

// LaneRow is one lanes table row
type LaneRow struct {
	LaneID    string
	SegmentID string
	LaneType  string
	Direction string
	Ref       LaneBoundaryRef
}

// ContainerWriter accepts converted road network rows and persists them
// atomically: Commit makes everything durable at once, Close without a
// preceding Commit discards all buffered rows
type ContainerWriter interface {
	PutMetadata(key, value string) error
	AddJunction(id, name string) error
	AddSegment(id, junctionID, name string) error
	AddBoundary(id string, geometry []byte) error
	AddLane(row LaneRow) error
	AddBranchPointLane(row BranchPointRow) error
	Commit() error
	Close() error
}

// GeoPackageWriter persists converted rows into a GeoPackage (SQLite) file.
// The container is bootstrapped with an empty schema at construction time,
// all subsequent rows go through a single transaction
type GeoPackageWriter struct {
	db             *sql.DB
	tx             *sql.Tx
	insertBoundary *sql.Stmt
	insertLane     *sql.Stmt
	insertBranch   *sql.Stmt
	committed      bool
	bound          orb.Bound
	boundSet       bool
}

// NewGeoPackageWriter creates the container file, bootstraps the GeoPackage
// and road network schema for the given spatial reference and opens the row
// transaction
func NewGeoPackageWriter(path string, srsID int32) (*GeoPackageWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open container file")
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(fmt.Sprintf("PRAGMA application_id = %d", gpkgApplicationID)); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Can't set application id")
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", gpkgUserVersion)); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Can't set user version")
	}
	for _, statement := range schemaStatements {
		if _, err := db.Exec(statement); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "Can't bootstrap schema")
		}
	}
	_, err = db.Exec(
		`INSERT OR IGNORE INTO gpkg_spatial_ref_sys VALUES (?, ?, 'NONE', ?, 'undefined', 'local Cartesian frame of the road network')`,
		"Local Cartesian", srsID, srsID,
	)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Can't register spatial reference")
	}
	_, err = db.Exec(
		`INSERT INTO gpkg_contents (table_name, data_type, identifier, description, srs_id)
		VALUES (?, 'features', ?, 'road lane boundary polylines', ?)`,
		boundariesTable, boundariesTable, srsID,
	)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Can't register contents")
	}
	_, err = db.Exec(
		`INSERT INTO gpkg_geometry_columns VALUES (?, ?, 'LINESTRING', ?, 1, 0)`,
		boundariesTable, geometryColumn, srsID,
	)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Can't register geometry column")
	}
	if _, err := db.Exec(`INSERT INTO maliput_metadata (key, value) VALUES (?, ?)`, metaSchemaVersion, SchemaVersion); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Can't stamp schema version")
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Can't begin transaction")
	}
	writer := &GeoPackageWriter{
		db: db,
		tx: tx,
	}
	writer.insertBoundary, err = tx.Prepare(`INSERT INTO lane_boundaries (boundary_id, geometry) VALUES (?, ?)`)
	if err == nil {
		writer.insertLane, err = tx.Prepare(
			`INSERT INTO lanes (lane_id, segment_id, lane_type, direction,
				left_boundary_id, left_boundary_inverted, right_boundary_id, right_boundary_inverted)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	}
	if err == nil {
		writer.insertBranch, err = tx.Prepare(
			`INSERT INTO branch_point_lanes (branch_point_id, lane_id, side, lane_end) VALUES (?, ?, ?, ?)`)
	}
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, errors.Wrap(err, "Can't prepare insert statements")
	}
	return writer, nil
}

// PutMetadata stores a metadata pair, replacing an existing value
func (writer *GeoPackageWriter) PutMetadata(key, value string) error {
	_, err := writer.tx.Exec(`INSERT OR REPLACE INTO maliput_metadata (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return errors.Wrapf(err, "Can't put metadata '%s'", key)
	}
	return nil
}

// AddJunction stores one junctions table row
func (writer *GeoPackageWriter) AddJunction(id, name string) error {
	_, err := writer.tx.Exec(`INSERT INTO junctions (junction_id, name) VALUES (?, ?)`, id, name)
	if err != nil {
		return errors.Wrapf(err, "Can't insert junction '%s'", id)
	}
	return nil
}

// AddSegment stores one segments table row
func (writer *GeoPackageWriter) AddSegment(id, junctionID, name string) error {
	_, err := writer.tx.Exec(`INSERT INTO segments (segment_id, junction_id, name) VALUES (?, ?, ?)`, id, junctionID, name)
	if err != nil {
		return errors.Wrapf(err, "Can't insert segment '%s'", id)
	}
	return nil
}

// AddBoundary stores one boundary geometry blob and folds its planar extent
// into the contents bounding box
func (writer *GeoPackageWriter) AddBoundary(id string, geometry []byte) error {
	points, _, err := DecodeLineString(geometry)
	if err != nil {
		return errors.Wrapf(err, "Can't read back boundary '%s'", id)
	}
	lineBox := lineBound(points)
	if !writer.boundSet {
		writer.bound = lineBox
		writer.boundSet = true
	} else {
		writer.bound = writer.bound.Union(lineBox)
	}
	if _, err := writer.insertBoundary.Exec(id, geometry); err != nil {
		return errors.Wrapf(err, "Can't insert boundary '%s'", id)
	}
	return nil
}

// AddLane stores one lanes table row
func (writer *GeoPackageWriter) AddLane(row LaneRow) error {
	_, err := writer.insertLane.Exec(
		row.LaneID, row.SegmentID, row.LaneType, row.Direction,
		row.Ref.LeftBoundaryID, boolToInt(row.Ref.LeftInverted),
		row.Ref.RightBoundaryID, boolToInt(row.Ref.RightInverted),
	)
	if err != nil {
		return errors.Wrapf(err, "Can't insert lane '%s'", row.LaneID)
	}
	return nil
}

// AddBranchPointLane stores one branch_point_lanes table row
func (writer *GeoPackageWriter) AddBranchPointLane(row BranchPointRow) error {
	_, err := writer.insertBranch.Exec(row.BranchPointID, row.LaneID, row.Side.String(), row.End.String())
	if err != nil {
		return errors.Wrapf(err, "Can't insert branch point lane '%s'/'%s'", row.BranchPointID, row.LaneID)
	}
	return nil
}

// Commit writes the contents extent and makes all stored rows durable
func (writer *GeoPackageWriter) Commit() error {
	if writer.boundSet {
		_, err := writer.tx.Exec(
			`UPDATE gpkg_contents SET min_x = ?, min_y = ?, max_x = ?, max_y = ? WHERE table_name = ?`,
			writer.bound.Min.X(), writer.bound.Min.Y(), writer.bound.Max.X(), writer.bound.Max.Y(),
			boundariesTable,
		)
		if err != nil {
			return errors.Wrap(err, "Can't update contents extent")
		}
	}
	if err := writer.tx.Commit(); err != nil {
		return errors.Wrap(err, "Can't commit transaction")
	}
	writer.committed = true
	return nil
}

// Close releases the container. Without a preceding Commit all stored rows
// are discarded and the container keeps its empty bootstrapped schema
func (writer *GeoPackageWriter) Close() error {
	if writer.db == nil {
		return nil
	}
	if !writer.committed {
		writer.tx.Rollback()
	}
	err := writer.db.Close()
	writer.db = nil
	if err != nil {
		return errors.Wrap(err, "Can't close container file")
	}
	return nil
}

func boolToInt(flag bool) int {
	if flag {
		return 1
	}
	return 0
}
