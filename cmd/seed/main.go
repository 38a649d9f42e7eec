package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"giftlist/internal/config"
	"giftlist/internal/domain/models"
	"giftlist/internal/repository/postgres"
	"giftlist/internal/roles"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed roles")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: Cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	// Upsert the fixed roles from the embedded definitions. Re-running the
	// seed refreshes permission bundles without touching users.
	registry, err := roles.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load role definitions: %v", err)
	}

	roleRepo := postgres.NewRoleRepository(&postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	})

	for _, def := range registry.All() {
		role := &models.Role{
			Name:        def.Name,
			Permissions: def.Permissions,
		}
		if err := roleRepo.Upsert(ctx, role); err != nil {
			log.Fatalf("Failed to seed role %q: %v", def.Name, err)
		}
		log.Printf("Seeded role %q with %d permissions", role.Name, len(role.Permissions))
	}

	log.Println("Seeding complete")
}

// dropAllTables drops all tables in reverse dependency order.
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.WishLists,
		tables.Invitations,
		tables.GroupUsers,
		tables.Groups,
		tables.Users,
		tables.Roles,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
		log.Printf("  Dropped %s", table)
	}

	return nil
}
