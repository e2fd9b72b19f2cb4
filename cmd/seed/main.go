// Command seed prepares a database for local development: it runs the
// migrations and fills in a demo account with a small content tree.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"compendi/internal/auth"
	"compendi/internal/config"
	"compendi/internal/domain"
	"compendi/internal/models"
	"compendi/internal/repository/postgres"
	"compendi/internal/repository/postgres/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only run migrations, don't seed demo content")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if *dropTables {
		for _, table := range []string{
			"images", "sections", "files", "folders", "projects", "users",
			"schema_migrations",
		} {
			if _, err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE"); err != nil {
				log.Fatalf("Failed to drop table %s: %v", table, err)
			}
		}
		logger.Info("tables dropped")
	}

	if err := migrations.Up(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("migrations applied")

	if *schemaOnly {
		return
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Logger: logger}
	users := postgres.NewUserRepository(repoConfig)
	projects := postgres.NewProjectRepository(repoConfig)
	folders := postgres.NewFolderRepository(repoConfig)
	files := postgres.NewFileRepository(repoConfig)
	sections := postgres.NewSectionRepository(repoConfig)

	// Demo account, idempotent across runs
	user, err := users.GetByUsername(ctx, "demo")
	if errors.Is(err, domain.ErrNotFound) {
		hash, err := auth.HashPassword("demo-password")
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}
		user = &models.User{Username: "demo", Email: "demo@example.com", PasswordHash: hash}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		logger.Info("demo user created", "id", user.ID)
	} else if err != nil {
		log.Fatalf("Failed to look up demo user: %v", err)
	} else {
		logger.Info("demo user already present, skipping content seed", "id", user.ID)
		return
	}

	project := &models.Project{
		UserID:      user.ID,
		Name:        "Sample portfolio",
		Description: "A starter project to click around in.",
	}
	if err := projects.Create(ctx, project); err != nil {
		log.Fatalf("Failed to create demo project: %v", err)
	}

	root := &models.Folder{ProjectID: project.ID, Name: "writing"}
	if err := folders.Create(ctx, root); err != nil {
		log.Fatalf("Failed to create root folder: %v", err)
	}

	drafts := &models.Folder{ProjectID: project.ID, ParentID: &root.ID, Name: "drafts"}
	if err := folders.Create(ctx, drafts); err != nil {
		log.Fatalf("Failed to create child folder: %v", err)
	}

	file := &models.File{FolderID: root.ID, Name: "About me", SubName: "a short introduction"}
	if err := files.Create(ctx, file); err != nil {
		log.Fatalf("Failed to create demo file: %v", err)
	}

	for i, body := range []string{
		"Hello! This portfolio was seeded for local development.",
		"Log in as demo / demo-password and start editing.",
	} {
		section := &models.Section{FileID: file.ID, Position: i + 1, Body: body}
		if err := sections.Create(ctx, section); err != nil {
			log.Fatalf("Failed to create demo section: %v", err)
		}
	}

	logger.Info("demo content seeded",
		"project_id", project.ID,
		"folder_id", root.ID,
		"file_id", file.ID,
	)
}
