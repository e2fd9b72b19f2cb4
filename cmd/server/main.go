package main

import (
	"context"
	"database/sql"
	"errors"
	"html/template"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"compendi/internal/auth"
	"compendi/internal/config"
	"compendi/internal/handler"
	"compendi/internal/media"
	"compendi/internal/middleware"
	"compendi/internal/repository/postgres"
	"compendi/internal/repository/postgres/migrations"
	"compendi/internal/service"
	"compendi/internal/view"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOutput := os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = logFile
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Run migrations over a database/sql handle; the pool stays pgx-native
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open migration connection: %v", err)
	}
	if err := migrations.Up(migrationDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	migrationDB.Close()
	logger.Info("migrations applied")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	sectionRepo := postgres.NewSectionRepository(repoConfig)
	imageRepo := postgres.NewImageRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Media client for externally hosted images
	presets, err := media.NewPresetRegistry()
	if err != nil {
		log.Fatalf("Failed to load media presets: %v", err)
	}
	mediaClient := media.NewClient(cfg.Media, presets)

	// Create services
	authorizer := service.NewOwnerAuthorizer(projectRepo, folderRepo, fileRepo)
	authService := service.NewAuthService(userRepo, logger)
	projectService := service.NewProjectService(projectRepo, folderRepo, authorizer, logger)
	folderService := service.NewFolderService(folderRepo, fileRepo, authorizer, logger)
	fileService := service.NewFileService(fileRepo, sectionRepo, imageRepo, authorizer, mediaClient, txManager, logger)

	// Session cookies
	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.CookieSecure)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	// HTML renderer; imageURL gives templates access to delivery presets
	renderer, err := view.NewRenderer(template.FuncMap{
		"imageURL": mediaClient.DeliveryURL,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// Create handlers
	homeHandler := handler.NewHomeHandler(renderer)
	authHandler := handler.NewAuthHandler(authService, sessions, renderer, logger)
	projectHandler := handler.NewProjectHandler(projectService, folderService, renderer, logger)
	folderHandler := handler.NewFolderHandler(folderService, renderer, logger)
	fileHandler := handler.NewFileHandler(fileService, renderer, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	// Public routes
	mux.HandleFunc("GET /", homeHandler.Home)
	mux.HandleFunc("GET /healthz", homeHandler.Health)
	mux.Handle("GET /static/", view.StaticHandler())
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /register", authHandler.ShowRegister)
	mux.HandleFunc("POST /register", authHandler.Register)

	// Session routes
	mux.Handle("GET /logout", protected(authHandler.Logout))

	// Project routes
	mux.Handle("GET /projects", protected(projectHandler.List))
	mux.Handle("POST /projects", protected(projectHandler.Create))
	mux.Handle("GET /projects/{id}/add-child", protected(projectHandler.Show))
	mux.Handle("POST /projects/{id}/add-child", protected(projectHandler.AddChild))
	mux.Handle("GET /projects/{id}/settings", protected(projectHandler.ShowSettings))
	mux.Handle("POST /projects/{id}/settings", protected(projectHandler.UpdateSettings))
	mux.Handle("POST /projects/{id}/delete", protected(projectHandler.Delete))

	// Folder routes
	mux.Handle("GET /folder-view/{id}", protected(folderHandler.Show))
	mux.Handle("POST /folder-view/{id}", protected(folderHandler.CreateChild))
	mux.Handle("POST /folder-view/{id}/delete", protected(folderHandler.Delete))

	// File routes; the literal add-section pattern wins over the {id} wildcard
	mux.Handle("GET /file-view/{id}", protected(fileHandler.Show))
	mux.Handle("GET /file-edit/{id}", protected(fileHandler.ShowEdit))
	mux.Handle("POST /file-edit/{id}", protected(fileHandler.UpdateMain))
	mux.Handle("GET /file-edit/add-section", protected(fileHandler.AddSectionPage))
	mux.Handle("POST /file-edit/add-section", protected(fileHandler.AddSection))
	mux.Handle("POST /file-edit/{id}/add-image", protected(fileHandler.AddImage))
	mux.Handle("POST /file-edit/{id}/delete", protected(fileHandler.Delete))

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Session → Routes
	root = middleware.Session(sessions, userRepo, logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be first to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server, shut down cleanly on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
}
