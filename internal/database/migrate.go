package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one versioned schema change.
type Migration struct {
	Version string
	Name    string
	Up      []string
	Down    []string
}

// LoadMigrations reads the embedded migrations ordered by version.
func LoadMigrations() ([]Migration, error) {
	return loadMigrations(migrationFiles, "migrations")
}

func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	byVersion := map[string]*Migration{}
	for _, entry := range entries {
		name := entry.Name()
		var direction string
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			direction = "up"
		case strings.HasSuffix(name, ".down.sql"):
			direction = "down"
		default:
			continue
		}
		version, rest, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration file %s has no version prefix", name)
		}

		content, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		m, exists := byVersion[version]
		if !exists {
			m = &Migration{Version: version, Name: strings.TrimSuffix(strings.TrimSuffix(rest, ".up.sql"), ".down.sql")}
			byVersion[version] = m
		}
		if direction == "up" {
			m.Up = SplitStatements(string(content))
		} else {
			m.Down = SplitStatements(string(content))
		}
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// SplitStatements splits a script on semicolons ending a line. Oracle
// executes one statement per call and rejects the trailing semicolon.
func SplitStatements(script string) []string {
	var stmts []string
	var cur strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			cur.WriteString(strings.TrimSuffix(trimmed, ";"))
			stmts = append(stmts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteString(trimmed)
		cur.WriteString("\n")
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}

// Migrator applies migrations and records them in schema_migrations.
type Migrator struct {
	db         *sqlx.DB
	migrations []Migration
	logger     *zap.Logger
}

func NewMigrator(db *sqlx.DB, migrations []Migration, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, migrations: migrations, logger: logger}
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	var count int
	if err := m.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'"); err != nil {
		return fmt.Errorf("could not check schema_migrations: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := m.db.ExecContext(ctx, "CREATE TABLE schema_migrations (version VARCHAR2(32) PRIMARY KEY, applied_at TIMESTAMP NOT NULL)")
	if err != nil {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	var versions []string
	if err := m.db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("could not read applied migrations: %w", err)
	}
	done := make(map[string]bool, len(versions))
	for _, v := range versions {
		done[v] = true
	}
	return done, nil
}

// Up applies every pending migration in version order and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	done, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	ran := 0
	for _, mig := range m.migrations {
		if done[mig.Version] {
			continue
		}
		for _, stmt := range mig.Up {
			if _, err := m.db.ExecContext(ctx, stmt); err != nil {
				return ran, fmt.Errorf("could not execute migration %s_%s: %w", mig.Version, mig.Name, err)
			}
		}
		if _, err := m.db.ExecContext(ctx, "INSERT INTO schema_migrations (version, applied_at) VALUES (:1, :2)", mig.Version, time.Now()); err != nil {
			return ran, fmt.Errorf("could not record migration %s: %w", mig.Version, err)
		}
		m.logger.Info("Executed migration", zap.String("version", mig.Version), zap.String("name", mig.Name))
		ran++
	}

	m.logger.Info("Migrations completed successfully", zap.Int("applied", ran))
	return ran, nil
}

// Down reverts up to steps applied migrations, newest first.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	done, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	reverted := 0
	for i := len(m.migrations) - 1; i >= 0 && reverted < steps; i-- {
		mig := m.migrations[i]
		if !done[mig.Version] {
			continue
		}
		for _, stmt := range mig.Down {
			if _, err := m.db.ExecContext(ctx, stmt); err != nil {
				return reverted, fmt.Errorf("could not revert migration %s_%s: %w", mig.Version, mig.Name, err)
			}
		}
		if _, err := m.db.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = :1", mig.Version); err != nil {
			return reverted, fmt.Errorf("could not unrecord migration %s: %w", mig.Version, err)
		}
		m.logger.Info("Reverted migration", zap.String("version", mig.Version), zap.String("name", mig.Name))
		reverted++
	}
	return reverted, nil
}
