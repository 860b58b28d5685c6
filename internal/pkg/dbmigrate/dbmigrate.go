// Package dbmigrate applies schema migrations from an embedded filesystem
// using golang-migrate.
package dbmigrate

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ErrNilSource reports a nil migration filesystem.
var ErrNilSource = errors.New("dbmigrate: migration source is nil")

// Up applies every pending migration under dir within fsys against the
// database at dsn. A schema already at the latest version is not an error.
func Up(fsys fs.FS, dir, dsn string) error {
	m, err := newMigrator(fsys, dir, dsn)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("dbmigrate: up: %w", err)
	}
	return nil
}

// Down rolls back every applied migration. An empty schema is not an error.
func Down(fsys fs.FS, dir, dsn string) error {
	m, err := newMigrator(fsys, dir, dsn)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("dbmigrate: down: %w", err)
	}
	return nil
}

func newMigrator(fsys fs.FS, dir, dsn string) (*migrate.Migrate, error) {
	if fsys == nil {
		return nil, ErrNilSource
	}

	source, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("dbmigrate: source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, pgxScheme(dsn))
	if err != nil {
		return nil, fmt.Errorf("dbmigrate: new: %w", err)
	}
	return m, nil
}

// pgxScheme rewrites postgres:// URLs to the scheme the migrate pgx/v5
// driver registers, so callers can hand over the same DSN the pool uses.
func pgxScheme(dsn string) string {
	if rest, ok := strings.CutPrefix(dsn, "postgres://"); ok {
		return "pgx5://" + rest
	}
	if rest, ok := strings.CutPrefix(dsn, "postgresql://"); ok {
		return "pgx5://" + rest
	}
	return dsn
}

func closeMigrator(m *migrate.Migrate) {
	_, _ = m.Close()
}
