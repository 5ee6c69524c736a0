package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	walletpay "github.com/goliatone/go-walletpay"
	_ "github.com/mattn/go-sqlite3"
)

func TestSources_ReturnsPostgresAndSQLite(t *testing.T) {
	sources, err := Sources()
	if err != nil {
		t.Fatalf("sources: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}

	var postgresFound bool
	var sqliteFound bool
	for _, entry := range sources {
		matches, globErr := fs.Glob(entry.FS, "*.up.sql")
		if globErr != nil {
			t.Fatalf("glob %s: %v", entry.Dialect, globErr)
		}
		if len(matches) == 0 {
			t.Fatalf("expected %s migration files, got none", entry.Dialect)
		}
		switch entry.Dialect {
		case DialectPostgres:
			postgresFound = true
		case DialectSQLite:
			sqliteFound = true
		}
	}

	if !postgresFound {
		t.Fatalf("expected postgres source")
	}
	if !sqliteFound {
		t.Fatalf("expected sqlite source")
	}
}

func TestRegister_HonorsDialectSelection(t *testing.T) {
	var calls []string
	var labels []string
	registered, err := Register(context.Background(), func(_ context.Context, dialect string, label string, _ fs.FS) error {
		calls = append(calls, dialect)
		labels = append(labels, label)
		return nil
	}, WithDialects(" SQLite "))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if len(calls) != 1 || calls[0] != DialectSQLite {
		t.Fatalf("expected a single sqlite registration, got %v", calls)
	}
	if labels[0] != SourceLabel {
		t.Fatalf("expected source label %q, got %q", SourceLabel, labels[0])
	}
	if len(registered) != 1 || registered[0].Dialect != DialectSQLite {
		t.Fatalf("expected the sqlite source to be reported, got %v", registered)
	}
}

func TestRegister_RequiresARegisterFunc(t *testing.T) {
	if _, err := Register(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for a nil register function")
	}
}

func TestAttemptLedgerMigrationPair_ExistsForBothDialects(t *testing.T) {
	root := walletpay.GetMigrationsFS()
	paths := []string{
		"data/sql/migrations/20260801000000_create_wallet_authorization_attempts.up.sql",
		"data/sql/migrations/20260801000000_create_wallet_authorization_attempts.down.sql",
		"data/sql/migrations/sqlite/20260801000000_create_wallet_authorization_attempts.up.sql",
		"data/sql/migrations/sqlite/20260801000000_create_wallet_authorization_attempts.down.sql",
	}
	for _, migrationPath := range paths {
		content, err := fs.ReadFile(root, migrationPath)
		if err != nil {
			t.Fatalf("read migration %s: %v", migrationPath, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			t.Fatalf("expected migration %s to have SQL content", migrationPath)
		}
	}
}

func TestSQLiteAttemptLedgerMigration_ApplyAndRollback(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:migrations-attempt-ledger?mode=memory&cache=shared&_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	defer func() { _ = db.Close() }()

	root := walletpay.GetMigrationsFS()
	sqliteMigrations, err := fs.Sub(root, "data/sql/migrations/sqlite")
	if err != nil {
		t.Fatalf("resolve sqlite migrations: %v", err)
	}

	if err := execSQLMigration(
		context.Background(),
		db,
		sqliteMigrations,
		"20260801000000_create_wallet_authorization_attempts.up.sql",
	); err != nil {
		t.Fatalf("apply attempt ledger migration up: %v", err)
	}

	var count int
	if err := db.QueryRowContext(
		context.Background(),
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`,
		"wallet_authorization_attempts",
	).Scan(&count); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected wallet_authorization_attempts table after up migration")
	}

	if err := execSQLMigration(
		context.Background(),
		db,
		sqliteMigrations,
		"20260801000000_create_wallet_authorization_attempts.down.sql",
	); err != nil {
		t.Fatalf("apply attempt ledger migration down: %v", err)
	}

	if err := db.QueryRowContext(
		context.Background(),
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`,
		"wallet_authorization_attempts",
	).Scan(&count); err != nil {
		t.Fatalf("query sqlite_master after down migration: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected wallet_authorization_attempts to be dropped after down migration")
	}
}

func execSQLMigration(ctx context.Context, db *sql.DB, fsys fs.FS, filename string) error {
	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(content))
	return err
}
