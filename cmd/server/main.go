package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"contractflow.backend/internal/config"
	"contractflow.backend/internal/domain/entities"
	"contractflow.backend/internal/infrastructure/models"
	"contractflow.backend/internal/infrastructure/repositories"
	"contractflow.backend/internal/infrastructure/seed"
	"contractflow.backend/internal/interfaces/http/handlers"
	"contractflow.backend/internal/interfaces/http/middleware"
	"contractflow.backend/internal/usecases"
	"contractflow.backend/pkg/jwt"
	"contractflow.backend/pkg/logger"
	"contractflow.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	migrateDB = func(db *gorm.DB) error {
		return db.AutoMigrate(&models.Blueprint{}, &models.Contract{}, &models.ContractHistory{})
	}
	loadSeed  = seed.LoadBlueprintFile
	runServer = serveUntilSignal
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Redis.Enabled {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redis.Close()
		logger.Info(ctx, "Redis initialized, idempotency keys enabled")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := migrateDB(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info(ctx, "Database schema migrated")
	}

	blueprintRepo := repositories.NewBlueprintRepository(db)
	contractRepo := repositories.NewContractRepository(db)
	uow := repositories.NewUnitOfWork(db)

	blueprintUsecase := usecases.NewBlueprintUsecase(blueprintRepo)
	contractUsecase := usecases.NewContractUsecase(contractRepo, blueprintRepo, uow)

	if cfg.Seed.BlueprintFile != "" {
		inputs, err := loadSeed(cfg.Seed.BlueprintFile)
		if err != nil {
			return err
		}
		created, err := seed.ApplyBlueprints(ctx, blueprintUsecase, inputs)
		if err != nil {
			return err
		}
		logger.Info(ctx, "Blueprint seed applied",
			zap.String("file", cfg.Seed.BlueprintFile),
			zap.Int("created", created),
		)
	}

	var jwtService *jwt.JWTService
	if cfg.JWT.Secret != "" {
		jwtService = jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)
	}

	r := newRouter(routeDeps{
		blueprintHandler: handlers.NewBlueprintHandler(blueprintUsecase),
		contractHandler:  handlers.NewContractHandler(contractUsecase),
		actorMiddleware: middleware.ActorMiddleware(middleware.ActorConfig{
			DefaultRole:  entities.Role(cfg.Auth.DefaultRole),
			DefaultID:    cfg.Auth.DefaultUserID,
			DefaultName:  cfg.Auth.DefaultUserName,
			AllowHeaders: cfg.Auth.AllowHeaderActor,
		}, jwtService),
		idempotencyMiddleware: middleware.IdempotencyMiddleware(),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	logger.Info(ctx, "Contract service starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "/api/v1"),
		zap.Bool("redis", cfg.Redis.Enabled),
	)
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// serveUntilSignal blocks until the listener fails or SIGINT/SIGTERM
// arrives, then drains in-flight requests.
func serveUntilSignal(h http.Handler, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-quit:
		logger.Info(context.Background(), "Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
