package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-profile-service/config"
	"github.com/oksasatya/go-profile-service/internal/application"
	"github.com/oksasatya/go-profile-service/internal/container"
	repouser "github.com/oksasatya/go-profile-service/internal/domain/repository"
	"github.com/oksasatya/go-profile-service/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/go-profile-service/internal/infrastructure/mongo"
	"github.com/oksasatya/go-profile-service/internal/infrastructure/notify"
	pginfra "github.com/oksasatya/go-profile-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-profile-service/internal/infrastructure/search"
	"github.com/oksasatya/go-profile-service/internal/infrastructure/storage"
	handlers "github.com/oksasatya/go-profile-service/internal/interface/http"
	"github.com/oksasatya/go-profile-service/internal/interface/middleware"
	"github.com/oksasatya/go-profile-service/internal/router/modules"
	mailtpl "github.com/oksasatya/go-profile-service/pkg/mailer/templates"
)

// Deps is everything the HTTP modules need, built once from the container.
type Deps struct {
	Repo    repouser.UserRepository
	Auth    *application.AuthService
	Profile *application.ProfileService

	AuthHandler    *handlers.AuthHandler
	ProfileHandler *handlers.ProfileHandler
	UserHandler    *handlers.UserHandler
	HealthHandler  *handlers.HealthHandler
}

// buildRepository picks the user store for cfg.DBDriver. The matching client
// must already be in the container.
func buildRepository(cfg *config.Config) repouser.UserRepository {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return pginfra.NewUserRepository(container.GetPGPool())
	case config.DriverMemory:
		return memory.NewUserRepository()
	default:
		return mongoinfra.NewUserRepository(container.GetMongoDB())
	}
}

// buildPorts returns only the side services that are configured, so that the
// application layer sees untyped nil interfaces for the rest.
func buildPorts(cfg *config.Config) (application.ProfileIndexer, application.AvatarStore, application.Notifier) {
	var (
		index    application.ProfileIndexer
		avatars  application.AvatarStore
		notifier application.Notifier
	)
	if es := container.GetES(); es != nil {
		index = search.NewProfileIndex(es, cfg.ESUsersIndex)
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		avatars = storage.NewAvatarStore(gcs, cfg.GCSBucket)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = notify.NewEmailNotifier(pub, mailtpl.Brand{AppName: cfg.AppName, AppURL: cfg.AppURL})
	}
	return index, avatars, notifier
}

func healthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{}
	if db := container.GetMongoDB(); db != nil {
		checks["mongo"] = func(ctx context.Context) error { return db.Client().Ping(ctx, nil) }
	}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}

func BuildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	repo := buildRepository(cfg)
	index, avatars, notifier := buildPorts(cfg)

	authSvc := application.NewAuthService(repo, jwt, index, notifier, logger)
	profileSvc := application.NewProfileService(repo, index, avatars, notifier, logger, cfg.AvatarMaxBytes)

	return Deps{
		Repo:           repo,
		Auth:           authSvc,
		Profile:        profileSvc,
		AuthHandler:    handlers.NewAuthHandler(authSvc, logger),
		ProfileHandler: handlers.NewProfileHandler(profileSvc, logger, cfg.AvatarMaxBytes),
		UserHandler:    handlers.NewUserHandler(profileSvc, logger),
		HealthHandler:  handlers.NewHealthHandler(healthChecks()),
	}
}

// InitModules builds the dependencies and registers every module with r.
// It should be called once during startup, after the container is populated.
func InitModules(r *Registry) Deps {
	deps := BuildDeps()
	cfg := container.GetConfig()
	rdb := container.GetRedis()

	// every /api route shares one per-IP budget
	r.Use(middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil))

	protected := []gin.HandlerFunc{
		middleware.Auth(container.GetJWT(), deps.Repo, container.GetLogger()),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	}

	r.Add(
		ModuleFunc(func(rg *gin.RouterGroup) { rg.GET("/health", deps.HealthHandler.Health) }),
		modules.NewAuthModule(deps.AuthHandler, rdb, protected...),
		modules.NewProfileModule(deps.ProfileHandler, rdb, protected...),
		modules.NewUserModule(deps.UserHandler, protected...),
	)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
	return deps
}
