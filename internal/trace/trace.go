// Package trace records per-tick body state into an SQLite database so runs
// can be inspected or replayed frame by frame.
package trace

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tomz197/bubblesim/internal/physics"
)

// Memory opens a private in-memory database instead of a file.
const Memory = ":memory:"

var ErrExists = errors.New("trace: database file already exists")

const schema = `
CREATE TABLE bodies (
	tick       INTEGER,
	idx        INTEGER, -- position in the body array
	grp        INTEGER,
	x          REAL,
	y          REAL,
	vx         REAL,
	vy         REAL,
	radius     REAL,
	eliminated INTEGER);
`

const indices = `
CREATE INDEX IF NOT EXISTS idx_tick ON bodies (tick, idx);
CREATE INDEX IF NOT EXISTS idx_grp ON bodies (grp);
`

const (
	insert     = `INSERT INTO bodies VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`
	queryFrame = `SELECT idx, grp, x, y, vx, vy, radius, eliminated FROM bodies WHERE tick = ? ORDER BY idx ASC;`
	queryLast  = `SELECT COALESCE(MAX(tick), -1) FROM bodies;`
)

// Row is one recorded body.
type Row struct {
	Index      int
	Group      int
	X, Y       float64
	VX, VY     float64
	Radius     float64
	Eliminated bool
}

// Recorder appends ticks to a trace database. Not safe for concurrent use.
type Recorder struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// Open creates a new trace database at filename (or Memory).
// An existing file is never overwritten.
func Open(filename string) (*Recorder, error) {
	dsn := Memory
	if filename != Memory {
		if _, err := os.Stat(filename); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrExists, filename)
		}
		dsn = "file:" + filename + "?_journal_mode=OFF&_synchronous=OFF"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open trace db: %w", err)
	}
	// sqlite allows a single writer; a shared in-memory db also needs one connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create trace schema: %w", err)
	}
	stmt, err := db.Prepare(insert)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare trace insert: %w", err)
	}
	return &Recorder{db: db, stmt: stmt}, nil
}

// Record stores every body of one tick in a single transaction.
func (r *Recorder) Record(tick uint64, bodies []physics.Body) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tick %d: %w", tick, err)
	}
	stmt := tx.Stmt(r.stmt)

	for i := range bodies {
		b := &bodies[i]
		_, err = stmt.Exec(
			int64(tick),
			i,
			b.Group,
			b.Pos.X(),
			b.Pos.Y(),
			b.Vel.X(),
			b.Vel.Y(),
			b.Radius,
			b.Eliminated)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert tick %d body %d: %w", tick, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tick %d: %w", tick, err)
	}
	return nil
}

// Frame returns the bodies recorded for tick, ordered by index.
func (r *Recorder) Frame(tick uint64) ([]Row, error) {
	rows, err := r.db.Query(queryFrame, int64(tick))
	if err != nil {
		return nil, fmt.Errorf("query tick %d: %w", tick, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.Index, &row.Group, &row.X, &row.Y, &row.VX, &row.VY, &row.Radius, &row.Eliminated); err != nil {
			return nil, fmt.Errorf("scan tick %d: %w", tick, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LastTick returns the highest recorded tick, or -1 if nothing was recorded.
func (r *Recorder) LastTick() (int64, error) {
	var last int64
	if err := r.db.QueryRow(queryLast).Scan(&last); err != nil {
		return 0, fmt.Errorf("query last tick: %w", err)
	}
	return last, nil
}

// Close builds the lookup indices and closes the database.
func (r *Recorder) Close() error {
	r.stmt.Close()
	if _, err := r.db.Exec(indices); err != nil {
		r.db.Close()
		return fmt.Errorf("create trace indices: %w", err)
	}
	return r.db.Close()
}
