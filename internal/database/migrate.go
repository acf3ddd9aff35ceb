package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"law-quiz/internal/config"
	"law-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

const (
	oracleMigrationsDir   = "migrations/oracle"
	postgresMigrationsDir = "migrations/postgres"

	// ORA-00955: name is already used by an existing object.
	oracleAlreadyExists = "ORA-00955"
)

// RunMigrations brings the batch table up to date for the given store driver.
func RunMigrations(ctx context.Context, db *sqlx.DB, storeDriver string) error {
	switch storeDriver {
	case config.StoreDriverPostgres:
		return runGooseMigrations(ctx, db)
	case config.StoreDriverOracle:
		return runOracleMigrations(ctx, db, migrationsFS)
	default:
		return fmt.Errorf("no migrations for store driver %q", storeDriver)
	}
}

func runGooseMigrations(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetTableName("law_quiz_goose_version")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, postgresMigrationsDir); err != nil {
		return fmt.Errorf("could not apply postgres migrations: %w", err)
	}
	logger.Get().Info("Postgres migrations completed successfully")
	return nil
}

// runOracleMigrations executes every *.up.sql file in name order. Objects
// that already exist are skipped so the command can be re-run.
func runOracleMigrations(ctx context.Context, db *sqlx.DB, fsys fs.FS) error {
	l := logger.Get()

	entries, err := fs.ReadDir(fsys, oracleMigrationsDir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := fs.ReadFile(fsys, path.Join(oracleMigrationsDir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		stmt := strings.TrimSuffix(strings.TrimSpace(string(content)), ";")
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if strings.Contains(err.Error(), oracleAlreadyExists) {
				l.Info("Migration already applied", zap.String("file", name))
				continue
			}
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}

		l.Info("Executed migration", zap.String("file", name))
	}

	l.Info("Oracle migrations completed successfully", zap.Int("files", len(names)))
	return nil
}
