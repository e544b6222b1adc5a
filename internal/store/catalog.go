package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"voxelworld/internal/world"
)

// Entry is one catalogued generation run.
type Entry struct {
	world.Dimensions

	Name      string
	Generator string
	Seed      int32
	Digest    string
	Path      string
	CreatedAt time.Time
}

// created_at is stored as fixed width UTC text so it sorts lexically.
const createdLayout = "2006-01-02T15:04:05.000000000Z"

// Catalog records generated levels in a sqlite database.
type Catalog struct {
	db *sql.DB
}

// Digest returns the hex sha256 of the level's block buffer.
func Digest(lvl *world.Level) string {
	sum := sha256.Sum256(lvl.Raw())
	return hex.EncodeToString(sum[:])
}

// NewEntry describes lvl for the catalog. CreatedAt is left for Record to fill.
func NewEntry(name, generator string, seed int32, lvl *world.Level, path string) Entry {
	return Entry{
		Name:       name,
		Generator:  generator,
		Seed:       seed,
		Dimensions: lvl.Dimensions,
		Digest:     Digest(lvl),
		Path:       path,
	}
}

// OpenCatalog opens or creates the catalog database at path.
func OpenCatalog(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("empty catalog path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
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
	return &Catalog{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("catalog pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS levels (
			name TEXT PRIMARY KEY,
			generator TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			length INTEGER NOT NULL,
			digest TEXT NOT NULL,
			path TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_levels_seed ON levels(generator, seed);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("catalog schema: %w", err)
		}
	}
	return nil
}

// Record inserts or replaces the entry for e.Name. A zero CreatedAt is set to now.
func (c *Catalog) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO levels(name,generator,seed,width,height,length,digest,path,created_at)
		 VALUES(?,?,?,?,?,?,?,?,?)`,
		e.Name, e.Generator, e.Seed, e.Width, e.Height, e.Length, e.Digest, e.Path,
		e.CreatedAt.UTC().Format(createdLayout),
	)
	if err != nil {
		return fmt.Errorf("record level %q: %w", e.Name, err)
	}
	return nil
}

const entryColumns = `name,generator,seed,width,height,length,digest,path,created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		e       Entry
		created string
	)
	if err := row.Scan(&e.Name, &e.Generator, &e.Seed, &e.Width, &e.Height, &e.Length, &e.Digest, &e.Path, &created); err != nil {
		return Entry{}, err
	}
	t, err := time.Parse(createdLayout, created)
	if err != nil {
		return Entry{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	e.CreatedAt = t
	return e, nil
}

// Lookup returns the entry recorded under name, or ErrNotFound.
func (c *Catalog) Lookup(ctx context.Context, name string) (Entry, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM levels WHERE name=?`, name)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("lookup level %q: %w", name, err)
	}
	return e, nil
}

// List returns every entry, newest first.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM levels ORDER BY created_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list levels: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	return out, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}
