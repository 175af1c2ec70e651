package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-service/config"
	"github.com/oksasatya/go-profile-service/internal/domain/entity"
	repouser "github.com/oksasatya/go-profile-service/internal/domain/repository"
	mongoinfra "github.com/oksasatya/go-profile-service/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/go-profile-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-profile-service/pkg/helpers"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "password123"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var repo repouser.UserRepository
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to postgres")
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.WithError(err).Fatal("migration failed")
		}
		repo = pginfra.NewUserRepository(pool)
	case config.DriverMongo:
		client, err := mongoinfra.NewClient(ctx, cfg.MongoURI, cfg.MongoMaxPoolSize, cfg.MongoTimeout)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to mongo")
		}
		defer func() { _ = mongoinfra.Disconnect(client) }()
		mrepo := mongoinfra.NewUserRepository(client.Database(cfg.MongoDatabase))
		if err := mrepo.EnsureIndexes(ctx); err != nil {
			logger.WithError(err).Fatal("failed to ensure mongo indexes")
		}
		repo = mrepo
	default:
		logger.Fatalf("seeding needs a persistent DB_DRIVER, got %q", cfg.DBDriver)
	}

	hash, err := helpers.HashPassword(demoPassword)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}
	u := demoUser(hash)
	if err := repo.Create(ctx, u); err != nil {
		if errors.Is(err, repouser.ErrDuplicateEmail) {
			logger.WithField("email", demoEmail).Info("demo user already exists")
			return
		}
		logger.WithError(err).Fatal("failed to seed user")
	}
	logger.WithFields(logrus.Fields{"id": u.ID, "email": demoEmail, "password": demoPassword}).Info("seeded demo user")
}

func demoUser(hash string) *entity.User {
	graduated := time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC)
	return &entity.User{
		Email:              demoEmail,
		Password:           hash,
		FirstName:          "Demo",
		LastName:           "User",
		Bio:                "Seeded account for local development.",
		Address:            &entity.Address{City: "Jakarta", Country: "Indonesia"},
		PreferredLanguages: []string{"en", "id"},
		InterestedTopics:   []string{"go", "distributed systems"},
		Education: []entity.Education{{
			Degree: "BSc", College: "Universitas Indonesia", FieldOfStudy: "Computer Science",
			StartDate: time.Date(2015, time.September, 1, 0, 0, 0, 0, time.UTC), EndDate: &graduated,
		}},
		WorkExperience: []entity.WorkExperience{{
			JobTitle: "Backend Engineer", Company: "Acme", EmploymentType: "full-time",
			StartDate: time.Date(2019, time.August, 1, 0, 0, 0, 0, time.UTC), Location: "Remote",
		}},
		Settings: entity.DefaultSettings(),
	}
}
