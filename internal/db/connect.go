package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Normalize maps driver aliases onto the two supported drivers.
func Normalize(d string) Driver {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "pgx", "pgsql", "postgres", "postgresql":
		return DriverPostgres
	case "sqlite", "sqlite3", "":
		return DriverSQLite
	}
	return Driver(d)
}

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:thesisgrade.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/thesisgrade?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// one writer keeps appends serialized
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS evaluation_log (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  recorded_at INTEGER NOT NULL,      -- unix nanoseconds
  student_id TEXT NOT NULL,
  student_name TEXT NOT NULL,
  evaluator_name TEXT NOT NULL,
  role TEXT NOT NULL,
  role_average REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS evaluation_log_student ON evaluation_log (student_id, seq);

CREATE TABLE IF NOT EXISTS students (
  id TEXT PRIMARY KEY,               -- NIM
  name TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  seminar REAL,
  updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS lecturers (
  name TEXT PRIMARY KEY,
  updated_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS evaluation_log (
  seq BIGSERIAL PRIMARY KEY,
  id TEXT NOT NULL UNIQUE,
  recorded_at BIGINT NOT NULL,
  student_id TEXT NOT NULL,
  student_name TEXT NOT NULL,
  evaluator_name TEXT NOT NULL,
  role TEXT NOT NULL,
  role_average DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS evaluation_log_student ON evaluation_log (student_id, seq);

CREATE TABLE IF NOT EXISTS students (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  seminar DOUBLE PRECISION,
  updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS lecturers (
  name TEXT PRIMARY KEY,
  updated_at BIGINT NOT NULL
);
`
