package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:gleegrow.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/gleegrow?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
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

CREATE TABLE IF NOT EXISTS parents (
  uid TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS children (
  id TEXT PRIMARY KEY,
  parent_uid TEXT NOT NULL,
  name TEXT NOT NULL,
  age INTEGER NOT NULL,
  email TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS assessments (
  child_id TEXT NOT NULL,
  subject TEXT NOT NULL,
  level INTEGER NOT NULL,
  score INTEGER NOT NULL,
  taken_at INTEGER NOT NULL,
  taken INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (child_id, subject)
);

CREATE TABLE IF NOT EXISTS completions (
  child_key TEXT NOT NULL,
  module TEXT NOT NULL,
  identifier TEXT NOT NULL,
  record_json TEXT NOT NULL,
  updated_at INTEGER NOT NULL,
  PRIMARY KEY (child_key, module, identifier)
);

CREATE TABLE IF NOT EXISTS level_tests (
  child_id TEXT NOT NULL,
  module TEXT NOT NULL,
  week TEXT NOT NULL,
  record_json TEXT NOT NULL,
  PRIMARY KEY (child_id, module, week)
);

CREATE TABLE IF NOT EXISTS weekly_assignments (
  child_id TEXT NOT NULL,
  week TEXT NOT NULL,
  modules_json TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  PRIMARY KEY (child_id, week)
);

`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS parents (
  uid TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS children (
  id TEXT PRIMARY KEY,
  parent_uid TEXT NOT NULL,
  name TEXT NOT NULL,
  age INTEGER NOT NULL,
  email TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS assessments (
  child_id TEXT NOT NULL,
  subject TEXT NOT NULL,
  level INTEGER NOT NULL,
  score INTEGER NOT NULL,
  taken_at BIGINT NOT NULL,
  taken BOOLEAN NOT NULL DEFAULT FALSE,
  PRIMARY KEY (child_id, subject)
);

CREATE TABLE IF NOT EXISTS completions (
  child_key TEXT NOT NULL,
  module TEXT NOT NULL,
  identifier TEXT NOT NULL,
  record_json TEXT NOT NULL,
  updated_at BIGINT NOT NULL,
  PRIMARY KEY (child_key, module, identifier)
);

CREATE TABLE IF NOT EXISTS level_tests (
  child_id TEXT NOT NULL,
  module TEXT NOT NULL,
  week TEXT NOT NULL,
  record_json TEXT NOT NULL,
  PRIMARY KEY (child_id, module, week)
);

CREATE TABLE IF NOT EXISTS weekly_assignments (
  child_id TEXT NOT NULL,
  week TEXT NOT NULL,
  modules_json TEXT NOT NULL,
  created_at BIGINT NOT NULL,
  PRIMARY KEY (child_id, week)
);

`
