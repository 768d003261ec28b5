package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/integration-tracker/internal"
	"github.com/frahmantamala/integration-tracker/internal/attachment"
	attachmentsqlite "github.com/frahmantamala/integration-tracker/internal/attachment/sqlite"
	"github.com/frahmantamala/integration-tracker/internal/auth"
	"github.com/frahmantamala/integration-tracker/internal/contact"
	contactsqlite "github.com/frahmantamala/integration-tracker/internal/contact/sqlite"
	"github.com/frahmantamala/integration-tracker/internal/core/events"
	"github.com/frahmantamala/integration-tracker/internal/project"
	projectsqlite "github.com/frahmantamala/integration-tracker/internal/project/sqlite"
	"github.com/frahmantamala/integration-tracker/internal/risk"
	risksqlite "github.com/frahmantamala/integration-tracker/internal/risk/sqlite"
	"github.com/frahmantamala/integration-tracker/internal/task"
	tasksqlite "github.com/frahmantamala/integration-tracker/internal/task/sqlite"
	"github.com/frahmantamala/integration-tracker/internal/template"
	templatesqlite "github.com/frahmantamala/integration-tracker/internal/template/sqlite"
	"github.com/frahmantamala/integration-tracker/internal/transport/rest"
	"github.com/frahmantamala/integration-tracker/internal/user"
	usersqlite "github.com/frahmantamala/integration-tracker/internal/user/sqlite"
	"github.com/frahmantamala/integration-tracker/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config      *internal.Config
	DB          *sqlx.DB
	Router      *chi.Mux
	AuthService *auth.Service
	Logger      *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	deps.AuthService.StartSweeper(sweepCtx, auth.SweepInterval)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		stopSweeper()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		stopSweeper()
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.L()

	// Fail fast on a malformed API contract rather than serving a
	// document swagger cannot render.
	if err := validateAPIContract("api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	gormDB, sqlxDB, err := openDatabases(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewBus(log)
	events.RegisterAuditLog(bus, log)

	userRepo := usersqlite.NewUserRepository(gormDB)
	projectRepo := projectsqlite.NewProjectRepository(gormDB)
	taskRepo := tasksqlite.NewTaskRepository(gormDB)
	contactRepo := contactsqlite.NewContactRepository(gormDB)
	riskRepo := risksqlite.NewRiskRepository(gormDB)
	attachmentRepo := attachmentsqlite.NewAttachmentRepository(gormDB)
	templateRepo := templatesqlite.NewTemplateRepository(gormDB)

	store, err := attachment.NewDiskStore(config.Storage.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	authService := auth.NewService(userRepo, config.Security.TokenSecret, log, bus)
	userService := user.NewService(userRepo, log)
	attachmentService := attachment.NewService(attachmentRepo, store, taskRepo, log, bus)
	taskService := task.NewService(taskRepo, attachmentService, log, bus)
	contactService := contact.NewService(contactRepo, log)
	riskService := risk.NewService(riskRepo, log)
	templateService := template.NewService(templateRepo, log)
	projectService := project.NewService(projectRepo, templateRepo, attachmentService, log, bus)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, sqlxDB, rest.Handlers{
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(userService),
		Project:    project.NewHandler(projectService),
		Task:       task.NewHandler(taskService),
		Contact:    contact.NewHandler(contactService),
		Risk:       risk.NewHandler(riskService),
		Attachment: attachment.NewHandler(attachmentService),
		Template:   template.NewHandler(templateService),
	}, authService, config.Server.AllowedOrigins, log)

	return &Dependencies{
		Config:      config,
		DB:          sqlxDB,
		Router:      router,
		AuthService: authService,
		Logger:      log,
	}, nil
}

// openDatabases opens one connection pool through gorm and exposes the
// same pool through sqlx for the health handler's ping and stats.
func openDatabases(cfg internal.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	var dialector gorm.Dialector
	var sqlDriver string
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Source)
		sqlDriver = "pgx"
	default:
		dialector = sqlite.Open(cfg.Source)
		sqlDriver = "sqlite3"
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gormDB, sqlx.NewDb(sqlDB, sqlDriver), nil
}

func validateAPIContract(path string) error {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return err
	}
	return doc.Validate(loader.Context)
}
