package road2gpkg

/* Container schema stuff */

// SchemaVersion is the road network container layout version stamped into
// maliput_metadata
const SchemaVersion = "1.0.0"

// Geometric tolerances a downstream reader should rebuild the road with.
// These are advisory metadata, not the boundary match tolerance
const (
	DefaultLinearTolerance  = 5e-2
	DefaultAngularTolerance = 1e-3
)

const (
	boundariesTable = "lane_boundaries"
	geometryColumn  = "geometry"
)

// maliput_metadata keys
const (
	metaSchemaVersion    = "schema_version"
	metaLinearTolerance  = "linear_tolerance"
	metaAngularTolerance = "angular_tolerance"
	metaSourceFormat     = "source_format"
	metaSourceFile       = "source_file"
)

// schemaStatements bootstraps an empty container: the GeoPackage
// bookkeeping tables with their mandatory spatial reference rows, the road
// network tables and the lateral adjacency view. Rows which depend on the
// configured spatial reference are inserted separately by the writer.
var schemaStatements = []string{
	`CREATE TABLE gpkg_spatial_ref_sys (
		srs_name TEXT NOT NULL,
		srs_id INTEGER PRIMARY KEY,
		organization TEXT NOT NULL,
		organization_coordsys_id INTEGER NOT NULL,
		definition TEXT NOT NULL,
		description TEXT
	)`,
	`INSERT INTO gpkg_spatial_ref_sys VALUES
		('Undefined Cartesian SRS', -1, 'NONE', -1, 'undefined', 'undefined Cartesian coordinate reference system')`,
	`INSERT INTO gpkg_spatial_ref_sys VALUES
		('Undefined Geographic SRS', 0, 'NONE', 0, 'undefined', 'undefined geographic coordinate reference system')`,
	`INSERT INTO gpkg_spatial_ref_sys VALUES
		('WGS 84 geodetic', 4326, 'EPSG', 4326,
		'GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]]',
		'longitude/latitude coordinates in decimal degrees on the WGS 84 spheroid')`,
	`CREATE TABLE gpkg_contents (
		table_name TEXT NOT NULL PRIMARY KEY,
		data_type TEXT NOT NULL,
		identifier TEXT UNIQUE,
		description TEXT DEFAULT '',
		last_change DATETIME NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
		min_x DOUBLE,
		min_y DOUBLE,
		max_x DOUBLE,
		max_y DOUBLE,
		srs_id INTEGER,
		CONSTRAINT fk_gc_r_srs_id FOREIGN KEY (srs_id) REFERENCES gpkg_spatial_ref_sys(srs_id)
	)`,
	`CREATE TABLE gpkg_geometry_columns (
		table_name TEXT NOT NULL,
		column_name TEXT NOT NULL,
		geometry_type_name TEXT NOT NULL,
		srs_id INTEGER NOT NULL,
		z TINYINT NOT NULL,
		m TINYINT NOT NULL,
		CONSTRAINT pk_geom_cols PRIMARY KEY (table_name, column_name),
		CONSTRAINT fk_gc_tn FOREIGN KEY (table_name) REFERENCES gpkg_contents(table_name),
		CONSTRAINT fk_gc_srs FOREIGN KEY (srs_id) REFERENCES gpkg_spatial_ref_sys(srs_id)
	)`,
	`CREATE TABLE maliput_metadata (
		key TEXT PRIMARY KEY NOT NULL,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE junctions (
		junction_id TEXT PRIMARY KEY NOT NULL,
		name TEXT
	)`,
	`CREATE TABLE segments (
		segment_id TEXT PRIMARY KEY NOT NULL,
		junction_id TEXT NOT NULL,
		name TEXT,
		FOREIGN KEY (junction_id) REFERENCES junctions(junction_id)
	)`,
	`CREATE TABLE lane_boundaries (
		boundary_id TEXT PRIMARY KEY NOT NULL,
		geometry BLOB NOT NULL
	)`,
	`CREATE TABLE lanes (
		lane_id TEXT PRIMARY KEY NOT NULL,
		segment_id TEXT NOT NULL,
		lane_type TEXT NOT NULL DEFAULT 'driving',
		direction TEXT NOT NULL DEFAULT 'forward',
		left_boundary_id TEXT NOT NULL,
		left_boundary_inverted INTEGER NOT NULL DEFAULT 0,
		right_boundary_id TEXT NOT NULL,
		right_boundary_inverted INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (segment_id) REFERENCES segments(segment_id),
		FOREIGN KEY (left_boundary_id) REFERENCES lane_boundaries(boundary_id),
		FOREIGN KEY (right_boundary_id) REFERENCES lane_boundaries(boundary_id)
	)`,
	`CREATE TABLE branch_point_lanes (
		branch_point_id TEXT NOT NULL,
		lane_id TEXT NOT NULL,
		side TEXT NOT NULL CHECK (side IN ('a', 'b')),
		lane_end TEXT NOT NULL CHECK (lane_end IN ('start', 'finish')),
		FOREIGN KEY (lane_id) REFERENCES lanes(lane_id)
	)`,
	`CREATE VIEW view_adjacent_lanes AS
		SELECT a.lane_id AS lane_id, b.lane_id AS adjacent_lane_id, 'left' AS side
		FROM lanes a
		JOIN lanes b ON a.segment_id = b.segment_id
			AND a.lane_id != b.lane_id
			AND a.left_boundary_id = b.right_boundary_id
		UNION ALL
		SELECT a.lane_id AS lane_id, b.lane_id AS adjacent_lane_id, 'right' AS side
		FROM lanes a
		JOIN lanes b ON a.segment_id = b.segment_id
			AND a.lane_id != b.lane_id
			AND a.right_boundary_id = b.left_boundary_id`,
}
