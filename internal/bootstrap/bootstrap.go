package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/studentregistry/internal/app/controllers"
	appMigrations "github.com/yigit/studentregistry/internal/app/migrations"
	appRepos "github.com/yigit/studentregistry/internal/app/repositories"
	appRoutes "github.com/yigit/studentregistry/internal/app/routes"
	appServices "github.com/yigit/studentregistry/internal/app/services"
	"github.com/yigit/studentregistry/internal/config"
	"github.com/yigit/studentregistry/internal/db"
	appMiddleware "github.com/yigit/studentregistry/internal/middleware"
	"github.com/yigit/studentregistry/internal/pkg/filestorage"
	"github.com/yigit/studentregistry/internal/pkg/logger"
	"github.com/yigit/studentregistry/internal/seed"
	"github.com/yigit/studentregistry/web"
)

// DefaultConfigPath is used when no config path is given
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService    appServices.StudentService
	ImportService     appServices.ImportService
	StatsService      appServices.StatsService
	StudentController *appControllers.StudentController
	StatsController   *appControllers.StatsController
	HealthController  *appControllers.HealthController
	Repos             *appRepos.Repositories
	Database          *db.Database
	FileStorage       *filestorage.LocalStorage
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFromStrings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Strs("envOverrides", cfg.EnvOverrides).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the store, applies migrations and seeds sample data
// into an empty store when enabled.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Database, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database, lgr).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		if _, err := seed.CreateDefaultData(ctx, appRepos.NewStudentRepository(database), lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.Database, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Database: database}

	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.UploadPath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.ImportService = appServices.NewImportService(deps.Repos.StudentRepository, deps.FileStorage, lgr)
	deps.StatsService = appServices.NewStatsService(deps.Repos.StudentRepository)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.ImportService)
	deps.StatsController = appControllers.NewStatsController(deps.StatsService)
	deps.HealthController = appControllers.NewHealthController(database)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch {
	case gin.Mode() == gin.TestMode:
	case strings.ToLower(cfg.Server.Mode) == "production":
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	// Match on the escaped path so an encoded "/" stays inside :term.
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(logger.WithComponent(lgr, "http")))
	if cfg.Metrics.Enabled {
		router.Use(appMiddleware.Metrics())
	}

	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.StatsController,
		deps.HealthController,
		cfg.Metrics.Enabled,
	)
	appRoutes.SetupSwagger(router)
	web.RegisterRoutes(router)

	return router
}
