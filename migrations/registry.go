// Package migrations exposes the embedded attempt-ledger SQL migrations and
// registers them with a host application's migration runner.
package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	walletpay "github.com/goliatone/go-walletpay"
)

// SourceLabel identifies this module's migrations inside a host runner.
const SourceLabel = "go-walletpay"

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

const embeddedRoot = "data/sql/migrations"

// Source is one dialect's migration filesystem.
type Source struct {
	Dialect string
	Path    string
	FS      fs.FS
}

// RegisterFunc installs one dialect's migration filesystem into the host
// application's migration runner.
type RegisterFunc func(ctx context.Context, dialect string, sourceLabel string, fsys fs.FS) error

type Option func(*registration)

type registration struct {
	dialects []string
}

// WithDialects restricts registration to the named dialects. Names are
// trimmed and lowercased; an all-blank list keeps the default set.
func WithDialects(dialects ...string) Option {
	return func(r *registration) {
		next := normalizeDialects(dialects)
		if len(next) > 0 {
			r.dialects = next
		}
	}
}

// Sources resolves the per-dialect migration filesystems from the embedded
// tree, or from an explicit override root.
func Sources(overrides ...fs.FS) ([]Source, error) {
	root := walletpay.GetMigrationsFS()
	if len(overrides) > 0 && overrides[0] != nil {
		root = overrides[0]
	}

	base, basePath, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}
	sqliteFS, err := fs.Sub(base, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("migrations: resolve sqlite filesystem: %w", err)
	}

	sources := []Source{
		{Dialect: DialectPostgres, Path: basePath, FS: base},
		{Dialect: DialectSQLite, Path: joinPath(basePath, "sqlite"), FS: sqliteFS},
	}
	for _, source := range sources {
		matches, globErr := fs.Glob(source.FS, "*.up.sql")
		if globErr != nil {
			return nil, fmt.Errorf("migrations: glob %s %s: %w", source.Dialect, source.Path, globErr)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("migrations: %s filesystem %q has no *.up.sql files", source.Dialect, source.Path)
		}
	}
	return sources, nil
}

// Register resolves the embedded sources and hands each selected dialect to
// registerFn. It returns the sources that were registered.
func Register(ctx context.Context, registerFn RegisterFunc, opts ...Option) ([]Source, error) {
	if registerFn == nil {
		return nil, fmt.Errorf("migrations: register function is required")
	}

	reg := registration{dialects: []string{DialectPostgres, DialectSQLite}}
	for _, opt := range opts {
		if opt != nil {
			opt(&reg)
		}
	}

	sources, err := Sources()
	if err != nil {
		return nil, err
	}

	registered := make([]Source, 0, len(reg.dialects))
	for _, source := range sources {
		if !slices.Contains(reg.dialects, source.Dialect) {
			continue
		}
		if err := registerFn(ctx, source.Dialect, SourceLabel, source.FS); err != nil {
			return registered, fmt.Errorf("migrations: register %s (%s): %w", source.Dialect, source.Path, err)
		}
		registered = append(registered, source)
	}
	if len(registered) == 0 {
		return nil, fmt.Errorf("migrations: no embedded source matches dialects %v", reg.dialects)
	}
	return registered, nil
}

func resolveRoot(root fs.FS) (fs.FS, string, error) {
	if sub, err := fs.Sub(root, embeddedRoot); err == nil {
		return sub, embeddedRoot, nil
	}

	// An override root may already point at a directory of .sql files.
	entries, err := fs.ReadDir(root, ".")
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
				return root, ".", nil
			}
		}
	}
	return nil, "", fmt.Errorf("migrations: %s not found in the supplied filesystem", embeddedRoot)
}

func normalizeDialects(dialects []string) []string {
	seen := make(map[string]struct{}, len(dialects))
	out := make([]string, 0, len(dialects))
	for _, dialect := range dialects {
		trimmed := strings.TrimSpace(strings.ToLower(dialect))
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func joinPath(base string, suffix string) string {
	if base == "." {
		return suffix
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(suffix, "/")
}
