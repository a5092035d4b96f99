package testutils

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	leaderboardmigrations "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories/migrations"
	scoremigrations "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/repositories/migrations"
	tournamentmigrations "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories/migrations"
)

// RunMigrations brings a fresh database up to schema: River's queue tables
// first, then every module's bun migrations.
func RunMigrations(ctx context.Context, db *bun.DB, pgConnStr string) error {
	migrator := migrate.NewMigrator(db, tournamentmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	if err := runRiverMigrations(ctx, pgConnStr); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}

	orderedModules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"tournament", tournamentmigrations.Migrations},
		{"leaderboard", leaderboardmigrations.Migrations},
		{"score", scoremigrations.Migrations},
	}

	for _, mod := range orderedModules {
		if err := runModuleMigrations(ctx, db, mod.migrations, mod.name); err != nil {
			return err
		}
	}
	return nil
}

// runRiverMigrations creates River's job tables, which the tournament queue
// service requires.
func runRiverMigrations(ctx context.Context, pgConnStr string) error {
	poolConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		return fmt.Errorf("failed to parse DSN for River migrations: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool for River migrations: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}

	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}
	return nil
}

func runModuleMigrations(ctx context.Context, db *bun.DB, migrations *migrate.Migrations, name string) error {
	migrator := migrate.NewMigrator(db, migrations)
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run %s migrations: %w", name, err)
	}
	if group.ID == 0 {
		log.Printf("No %s migrations to run", name)
	}
	return nil
}

// TruncateTables empties the named tables, skipping ones that don't exist.
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	for _, table := range tables {
		var exists bool
		err := db.NewSelect().
			ColumnExpr("EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = ?)", table).
			Scan(ctx, &exists)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			continue
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// CleanScoringTables resets all module tables between tests.
func CleanScoringTables(ctx context.Context, db *bun.DB) error {
	return TruncateTables(ctx, db,
		"tournaments", "tournament_index", "global_leaderboards", "player_histories", "river_job")
}
