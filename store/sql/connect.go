package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	// Postgres is the production driver; sqlite callers register their own
	// (tests use mattn/go-sqlite3, which needs cgo).
	_ "github.com/lib/pq"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Dialect maps a database/sql driver name onto the bun dialect the
// persistence client and repositories expect.
func Dialect(driver string) (schema.Dialect, error) {
	switch normalizeDriver(driver) {
	case DriverPostgres:
		return pgdialect.New(), nil
	case DriverSQLite:
		return sqlitedialect.New(), nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
}

// Open opens a database handle for the given driver and DSN and returns the
// matching bun dialect.
func Open(driver, dsn string) (*sql.DB, schema.Dialect, error) {
	normalized := normalizeDriver(driver)
	dialect, err := Dialect(normalized)
	if err != nil {
		return nil, nil, err
	}
	db, err := sql.Open(normalized, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlstore: open %s: %w", normalized, err)
	}
	return db, dialect, nil
}

func normalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql", "pg":
		return DriverPostgres
	case "sqlite", "sqlite3":
		return DriverSQLite
	default:
		return strings.ToLower(strings.TrimSpace(driver))
	}
}
