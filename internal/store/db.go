// Package store provides SQLite storage for cubed-sphere metric runs.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection holding runs, their cells and nodes.
type DB struct {
	conn *sqlx.DB
}

// Run is one metrics computation with per-field summaries.
type Run struct {
	ID             int64   `db:"id"`
	N              int     `db:"n"`
	Corners        string  `db:"corners"`
	ExpectedArea   float64 `db:"expected_area"`
	ExpectedRadius float64 `db:"expected_radius"`
	AreaMin        float64 `db:"area_min"`
	AreaMax        float64 `db:"area_max"`
	AreaMean       float64 `db:"area_mean"`
	EllipMax       float64 `db:"ellip_max"`
	RadiusMaxMax   float64 `db:"radius_max_max"`
	RadiusMinMin   float64 `db:"radius_min_min"`
	Issues         int     `db:"issues"`
	CreatedAt      int64   `db:"created_at"` // unix nanoseconds
}

// Cell is the metrics of cell (I,J) of a run.
type Cell struct {
	RunID       int64   `db:"run_id"`
	I           int     `db:"i"`
	J           int     `db:"j"`
	Area        float64 `db:"area"`
	Ellipticity float64 `db:"ellipticity"`
	RadiusMax   float64 `db:"radius_max"`
	RadiusMin   float64 `db:"radius_min"`
}

// Node is a grid node with its spherical coordinates in radians.
type Node struct {
	RunID int64   `db:"run_id"`
	I     int     `db:"i"`
	J     int     `db:"j"`
	X     float64 `db:"x"`
	Y     float64 `db:"y"`
	Z     float64 `db:"z"`
	Theta float64 `db:"theta"`
	Phi   float64 `db:"phi"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		n INTEGER NOT NULL,
		corners TEXT NOT NULL,
		expected_area REAL NOT NULL,
		expected_radius REAL NOT NULL,
		area_min REAL NOT NULL,
		area_max REAL NOT NULL,
		area_mean REAL NOT NULL,
		ellip_max REAL NOT NULL,
		radius_max_max REAL NOT NULL,
		radius_min_min REAL NOT NULL,
		issues INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cells (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		i INTEGER NOT NULL,
		j INTEGER NOT NULL,
		area REAL NOT NULL,
		ellipticity REAL NOT NULL,
		radius_max REAL NOT NULL,
		radius_min REAL NOT NULL,
		PRIMARY KEY (run_id, i, j)
	);

	CREATE TABLE IF NOT EXISTS nodes (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		i INTEGER NOT NULL,
		j INTEGER NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		z REAL NOT NULL,
		theta REAL NOT NULL,
		phi REAL NOT NULL,
		PRIMARY KEY (run_id, i, j)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun inserts the run with its cells and nodes in one transaction and
// returns the new run ID.
func (db *DB) SaveRun(ctx context.Context, run *Run, cells []Cell, nodes []Node) (int64, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, `
		INSERT INTO runs (n, corners, expected_area, expected_radius, area_min, area_max, area_mean,
			ellip_max, radius_max_max, radius_min_min, issues, created_at)
		VALUES (:n, :corners, :expected_area, :expected_radius, :area_min, :area_max, :area_mean,
			:ellip_max, :radius_max_max, :radius_min_min, :issues, :created_at)`, run)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	cellStmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO cells (run_id, i, j, area, ellipticity, radius_max, radius_min)
		VALUES (:run_id, :i, :j, :area, :ellipticity, :radius_max, :radius_min)`)
	if err != nil {
		return 0, fmt.Errorf("prepare cells: %w", err)
	}
	defer cellStmt.Close()
	for k := range cells {
		cells[k].RunID = id
		if _, err := cellStmt.ExecContext(ctx, cells[k]); err != nil {
			return 0, fmt.Errorf("insert cell (%d, %d): %w", cells[k].I, cells[k].J, err)
		}
	}

	nodeStmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO nodes (run_id, i, j, x, y, z, theta, phi)
		VALUES (:run_id, :i, :j, :x, :y, :z, :theta, :phi)`)
	if err != nil {
		return 0, fmt.Errorf("prepare nodes: %w", err)
	}
	defer nodeStmt.Close()
	for k := range nodes {
		nodes[k].RunID = id
		if _, err := nodeStmt.ExecContext(ctx, nodes[k]); err != nil {
			return 0, fmt.Errorf("insert node (%d, %d): %w", nodes[k].I, nodes[k].J, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	run.ID = id
	return id, nil
}

// LoadRun returns the run with the given ID, or sql.ErrNoRows wrapped.
func (db *DB) LoadRun(ctx context.Context, id int64) (*Run, error) {
	var run Run
	if err := db.conn.GetContext(ctx, &run, `SELECT * FROM runs WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("load run %d: %w", id, err)
	}
	return &run, nil
}

// ListRuns returns all runs, newest first.
func (db *DB) ListRuns(ctx context.Context) ([]Run, error) {
	var runs []Run
	if err := db.conn.SelectContext(ctx, &runs, `SELECT * FROM runs ORDER BY id DESC`); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// LoadCells returns the cells of a run in row-major order.
func (db *DB) LoadCells(ctx context.Context, runID int64) ([]Cell, error) {
	var cells []Cell
	if err := db.conn.SelectContext(ctx, &cells,
		`SELECT * FROM cells WHERE run_id = ? ORDER BY i, j`, runID); err != nil {
		return nil, fmt.Errorf("load cells of run %d: %w", runID, err)
	}
	return cells, nil
}

// LoadNodes returns the nodes of a run in row-major order.
func (db *DB) LoadNodes(ctx context.Context, runID int64) ([]Node, error) {
	var nodes []Node
	if err := db.conn.SelectContext(ctx, &nodes,
		`SELECT * FROM nodes WHERE run_id = ? ORDER BY i, j`, runID); err != nil {
		return nil, fmt.Errorf("load nodes of run %d: %w", runID, err)
	}
	return nodes, nil
}

// DeleteRun removes a run together with its cells and nodes.
func (db *DB) DeleteRun(ctx context.Context, id int64) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{`DELETE FROM cells WHERE run_id = ?`, `DELETE FROM nodes WHERE run_id = ?`} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("delete run %d: %w", id, err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete run %d: %w", id, sql.ErrNoRows)
	}
	return tx.Commit()
}
