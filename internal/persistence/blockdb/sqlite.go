// Package blockdb stores the block model in SQLite, one named value per
// block per bench. Benches are read and written a slab at a time, which
// keeps the destination passes working on in-memory grids and makes a
// bench update a single transaction.
package blockdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrBenchAccess reports a bench that is missing from the model or
// cannot be opened.
var ErrBenchAccess = errors.New("blockdb: bench access")

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL keeps slab commits cheap; the model is single-writer.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS benches (
			bench INTEGER PRIMARY KEY,
			rows INTEGER NOT NULL,
			cols INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS cells (
			bench INTEGER NOT NULL,
			row INTEGER NOT NULL,
			col INTEGER NOT NULL,
			name TEXT NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (bench, row, col, name)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DefineBench records a bench's grid extents, creating or replacing the
// entry. Cells are written separately.
func (s *Store) DefineBench(bench, rows, cols int) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO benches(bench,rows,cols) VALUES(?,?,?)`, bench, rows, cols)
	return err
}

// Benches lists the benches present in the model, ascending.
func (s *Store) Benches() ([]int, error) {
	rows, err := s.db.Query(`SELECT bench FROM benches ORDER BY bench`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var b int
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Slab is one bench loaded into memory. Values are keyed by item name
// and block position; absent values stay absent until Set.
type Slab struct {
	store *Store

	Bench      int
	Rows, Cols int

	values map[cellKey]float64
	dirty  map[cellKey]float64
}

type cellKey struct {
	name     string
	row, col int
}

// Slab loads every stored value for one bench. A bench with no extents
// entry is a model access error.
func (s *Store) Slab(bench int) (*Slab, error) {
	var nr, nc int
	err := s.db.QueryRow(`SELECT rows, cols FROM benches WHERE bench=?`, bench).Scan(&nr, &nc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: bench %d not in model", ErrBenchAccess, bench)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBenchAccess, err)
	}

	rows, err := s.db.Query(`SELECT row, col, name, value FROM cells WHERE bench=?`, bench)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBenchAccess, err)
	}
	defer rows.Close()

	sl := &Slab{
		store:  s,
		Bench:  bench,
		Rows:   nr,
		Cols:   nc,
		values: make(map[cellKey]float64),
		dirty:  make(map[cellKey]float64),
	}
	for rows.Next() {
		var k cellKey
		var v float64
		if err := rows.Scan(&k.row, &k.col, &k.name, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBenchAccess, err)
		}
		sl.values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBenchAccess, err)
	}
	return sl, nil
}

// Get returns the stored value for an item at a block, reporting
// whether it is defined.
func (sl *Slab) Get(name string, row, col int) (float64, bool) {
	v, ok := sl.values[cellKey{name: name, row: row, col: col}]
	return v, ok
}

// Set stages a value; nothing reaches the database until Commit.
func (sl *Slab) Set(name string, row, col int, v float64) {
	k := cellKey{name: name, row: row, col: col}
	sl.values[k] = v
	sl.dirty[k] = v
}

// Commit writes every staged value in one transaction.
func (sl *Slab) Commit() error {
	if len(sl.dirty) == 0 {
		return nil
	}
	tx, err := sl.store.db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO cells(bench,row,col,name,value) VALUES(?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for k, v := range sl.dirty {
		if _, err := stmt.Exec(sl.Bench, k.row, k.col, k.name, v); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	sl.dirty = make(map[cellKey]float64)
	return nil
}

// Release drops the in-memory slab without writing staged values.
func (sl *Slab) Release() {
	sl.values = nil
	sl.dirty = nil
}
