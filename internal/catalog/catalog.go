package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/stone-age-io/iot-ui-sub006/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added code/type columns with defaults
const currentSchemaVersion = 1

// Catalog provides durable storage for the location inventory.
// Uses SQLite with WAL mode for concurrent read access.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// ListEdges returns every edge, ordered by name.
func (c *Catalog) ListEdges(ctx context.Context) ([]model.Edge, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name FROM edges ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list edges: %w", err)
	}
	defer rows.Close()

	var edges []model.Edge
	for rows.Next() {
		var e model.Edge
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edges: %w", err)
	}
	return edges, nil
}

// ListLocations returns every location, ordered by name. NULL
// coordinate columns map to unset pointers.
func (c *Catalog) ListLocations(ctx context.Context) ([]model.Location, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, code, type, COALESCE(edge_id, ''), lat, lng
		FROM locations ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locs []model.Location
	for rows.Next() {
		var (
			l        model.Location
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(&l.ID, &l.Name, &l.Code, &l.Type, &l.EdgeID, &lat, &lng); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		if lat.Valid || lng.Valid {
			coords := &model.Coordinates{}
			if lat.Valid {
				v := lat.Float64
				coords.Lat = &v
			}
			if lng.Valid {
				v := lng.Float64
				coords.Lng = &v
			}
			l.Coordinates = coords
		}
		locs = append(locs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return locs, nil
}

// PutEdge inserts or replaces an edge. A blank ID gets a fresh UUIDv7.
func (c *Catalog) PutEdge(ctx context.Context, e model.Edge) (model.Edge, error) {
	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return e, fmt.Errorf("generate edge id: %w", err)
		}
		e.ID = id.String()
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO edges (id, name) VALUES (?, ?)`, e.ID, e.Name)
	if err != nil {
		return e, fmt.Errorf("put edge %s: %w", e.ID, err)
	}
	return e, nil
}

// PutLocation inserts or replaces a location. A blank ID gets a fresh
// UUIDv7; missing coordinate components are stored as NULL.
func (c *Catalog) PutLocation(ctx context.Context, l model.Location) (model.Location, error) {
	if l.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return l, fmt.Errorf("generate location id: %w", err)
		}
		l.ID = id.String()
	}

	var lat, lng sql.NullFloat64
	if l.Coordinates != nil {
		if l.Coordinates.Lat != nil {
			lat = sql.NullFloat64{Float64: *l.Coordinates.Lat, Valid: true}
		}
		if l.Coordinates.Lng != nil {
			lng = sql.NullFloat64{Float64: *l.Coordinates.Lng, Valid: true}
		}
	}

	var edgeID any
	if l.EdgeID != "" {
		edgeID = l.EdgeID
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO locations (id, name, code, type, edge_id, lat, lng)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Code, l.Type, edgeID, lat, lng)
	if err != nil {
		return l, fmt.Errorf("put location %s: %w", l.ID, err)
	}
	return l, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < currentSchemaVersion {
		// Schema DDL above is the v1 shape; nothing incremental yet.
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}
