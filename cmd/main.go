package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-service/config"
	"github.com/oksasatya/go-profile-service/internal/container"
	mongoinfra "github.com/oksasatya/go-profile-service/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/go-profile-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-profile-service/internal/router"
	"github.com/oksasatya/go-profile-service/pkg/helpers"
	"github.com/oksasatya/go-profile-service/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	jwtManager, err := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		logger.WithError(err).Fatal("failed to init jwt")
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(jwtManager)

	cleanup := openStore(ctx, cfg, logger)
	defer cleanup()

	// Redis backs the rate limiters only; they fail open without it
	if cfg.RateLimitEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := helpers.PingRedis(ctx, rdb, 3*time.Second); err != nil {
			helpers.LogWarn(logger, "redis unavailable; rate limits fail open", err, logrus.Fields{"addr": cfg.RedisAddr})
		}
		container.SetRedis(rdb)
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err == nil {
			err = helpers.PingES(ctx, es, 5*time.Second)
		}
		if err != nil {
			helpers.LogWarn(logger, "profile search disabled", err, logrus.Fields{"addrs": addrs})
		} else {
			container.SetES(es)
		}
	}

	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentials)
		if err != nil {
			helpers.LogWarn(logger, "avatar uploads disabled", err, logrus.Fields{"bucket": cfg.GCSBucket})
		} else {
			defer func() { _ = gcsClient.Close() }()
			container.SetGCS(gcsClient)
		}
	}

	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogWarn(logger, "email notifications disabled", err, logrus.Fields{"queue": cfg.RabbitMQEmailQueue})
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	r := router.NewEngine(cfg, logger)
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
	}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "db_driver": cfg.DBDriver}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
		return
	}
	logger.Info("server exited properly")
}

// openStore connects the backend selected by DB_DRIVER, puts it in the
// container and returns its cleanup.
func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) func() {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to postgres")
		}
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			logger.WithError(err).Fatal("migration failed")
		}
		container.SetPGPool(pool)
		return pool.Close

	case config.DriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return func() {}

	default:
		client, err := mongoinfra.NewClient(ctx, cfg.MongoURI, cfg.MongoMaxPoolSize, cfg.MongoTimeout)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to mongo")
		}
		db := client.Database(cfg.MongoDatabase)
		idxCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
		defer cancel()
		if err := mongoinfra.NewUserRepository(db).EnsureIndexes(idxCtx); err != nil {
			_ = mongoinfra.Disconnect(client)
			logger.WithError(err).Fatal("failed to ensure mongo indexes")
		}
		container.SetMongoDB(db)
		return func() { _ = mongoinfra.Disconnect(client) }
	}
}
