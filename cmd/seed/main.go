package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"atelier/internal/config"
	"atelier/internal/repository/postgres"
	"atelier/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	fixturesPath := flag.String("fixtures", "", "YAML fixtures file (built-in defaults when empty)")
	flag.Parse()

	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	cfg := config.Load()

	// Refuse destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		logger.Info("dropping tables", "prefix", cfg.TablePrefix)
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	logger.Info("ensuring schema", "prefix", cfg.TablePrefix)
	if err := runSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}

	if *schemaOnly {
		logger.Info("schema setup complete")
		return
	}

	fixtures := seed.Default()
	if *fixturesPath != "" {
		fixtures, err = seed.Load(*fixturesPath)
		if err != nil {
			log.Fatalf("Failed to load fixtures: %v", err)
		}
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)

	if err := fixtures.Apply(ctx, userRepo, projectRepo); err != nil {
		log.Fatalf("Failed to apply fixtures: %v", err)
	}

	logger.Info("seeding complete",
		"users", len(fixtures.Users),
		"projects", len(fixtures.Projects),
	)
}

// runSchema creates the tables if they do not exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS %[2]s (
			id UUID PRIMARY KEY,
			owner_id TEXT NOT NULL REFERENCES %[1]s(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			visibility TEXT NOT NULL DEFAULT 'private'
				CHECK (visibility IN ('public', 'internal', 'private')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);

		CREATE INDEX IF NOT EXISTS %[2]s_owner_idx ON %[2]s(owner_id);

		CREATE TABLE IF NOT EXISTS %[3]s (
			project_id UUID NOT NULL REFERENCES %[2]s(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES %[1]s(id) ON DELETE CASCADE,
			PRIMARY KEY (project_id, user_id)
		);
	`, tables.Users, tables.Projects, tables.ProjectUser)

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// dropAllTables removes the prefixed tables, join table first
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	stmt := fmt.Sprintf(`
		DROP TABLE IF EXISTS %s;
		DROP TABLE IF EXISTS %s;
		DROP TABLE IF EXISTS %s;
	`, tables.ProjectUser, tables.Projects, tables.Users)

	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return nil
}
