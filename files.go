package accounts

import (
	"context"
	"embed"
	"sort"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the migration files for this package
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// RunMigrations applies the embedded schema files in lexical order. Each file
// may contain multiple statements separated by semicolons.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	entries, err := migrationsFS.ReadDir("data/sql/migrations")
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to read embedded migrations")
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := migrationsFS.ReadFile("data/sql/migrations/" + name)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to read migration "+name)
		}

		for _, stmt := range strings.Split(string(content), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return errors.Wrap(err, errors.CategoryInternal, "failed to apply migration "+name)
			}
		}
	}

	return nil
}
