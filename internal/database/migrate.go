package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/flashlearn/flashlearn/schemas"
)

// Migrate applies the embedded migrations for the driver of db.
// Every migration is idempotent, so it is safe to run on each start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	return migrate(ctx, db, schemas.Migrations)
}

func migrate(ctx context.Context, db *sqlx.DB, migrations fs.FS) error {
	dir := path.Join("migrations", db.DriverName())
	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return fmt.Errorf("fs.ReadDir(%s) > %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".sql" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := fs.ReadFile(migrations, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("fs.ReadFile(%s) > %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("db.ExecContext(migration %s) > %w", name, err)
		}
		slog.Default().Debug("applied migration", slog.String("name", name))
	}
	return nil
}
