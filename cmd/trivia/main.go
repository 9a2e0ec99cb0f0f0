package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aidin1998/trivia/api"
	"github.com/Aidin1998/trivia/internal/config"
	"github.com/Aidin1998/trivia/internal/database"
	"github.com/Aidin1998/trivia/internal/tracing"
	"github.com/Aidin1998/trivia/internal/trivia"
	"github.com/Aidin1998/trivia/pkg/logger"
	"github.com/joho/godotenv"
	limiter "github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create logger
	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, os.Stdout)
	if err != nil {
		zapLogger.Fatal("Failed to set up tracing", zap.Error(err))
	}

	db, err := database.Open(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer database.Close(db)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			zapLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	if seed, _ := flags.GetBool("seed"); seed {
		fixture, err := database.LoadFixture(cfg.Seed.File)
		if err != nil {
			zapLogger.Fatal("Failed to load seed fixture", zap.Error(err))
		}
		result, err := database.Seed(ctx, db, fixture)
		if err != nil {
			zapLogger.Fatal("Failed to seed database", zap.Error(err))
		}
		zapLogger.Info("Database seeded",
			zap.Int("categories", result.Categories),
			zap.Int("questions", result.Questions),
		)
		return
	}

	var (
		opts      []trivia.Option
		rateStore limiter.Store
	)
	if cfg.Redis.Addr != "" {
		redisClient, err := database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		defer redisClient.Close()
		opts = append(opts, trivia.WithCategoryCache(trivia.NewRedisCategoryCache(redisClient, cfg.Redis.TTL, zapLogger)))

		if cfg.Server.RateLimit != "" {
			rateStore, err = sredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: "trivia:limiter"})
			if err != nil {
				zapLogger.Fatal("Failed to create rate limit store", zap.Error(err))
			}
		}
	}

	triviaSvc := trivia.NewService(zapLogger, db, opts...)
	apiServer, err := api.NewServer(zapLogger, trivia.NewHandler(triviaSvc, zapLogger), api.Options{
		ServiceName:    cfg.Tracing.ServiceName,
		RateLimit:      cfg.Server.RateLimit,
		RateLimitStore: rateStore,
		Health: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	})
	if err != nil {
		zapLogger.Fatal("Failed to create API server", zap.Error(err))
	}

	// Schedule DB pool metrics collection every 30s
	go database.CollectStats(ctx, db, cfg.Database.Driver, 30*time.Second)

	httpServer := apiServer.HTTPServer(cfg.Server.Addr())
	go func() {
		zapLogger.Info("Starting API server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	// Wait for interrupt to shutdown
	<-ctx.Done()
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		zapLogger.Error("Failed to flush traces", zap.Error(err))
	}

	zapLogger.Info("Server exited properly")
}
