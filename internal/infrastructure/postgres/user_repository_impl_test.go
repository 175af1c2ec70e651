package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
	"github.com/oksasatya/go-profile-service/internal/domain/repository"
	"github.com/oksasatya/go-profile-service/internal/infrastructure/postgres"
)

const userID = "5f0c8a52-1f43-4c8e-9d7a-0a6f3a3b1e11"

var columns = []string{
	"id", "email", "password_hash", "first_name", "last_name", "avatar_url",
	"profile", "education", "work_experience", "settings", "created_at", "updated_at",
}

func userRow(profile, education, work, settings string) *pgxmock.Rows {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return pgxmock.NewRows(columns).AddRow(
		userID, "jane@example.com", "hash", "Jane", "Doe", "",
		[]byte(profile), []byte(education), []byte(work), []byte(settings), now, now,
	)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores user and fills generated fields", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now().UTC().Truncate(time.Microsecond)
		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs("jane@example.com", "hash", "Jane", "Doe", "",
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(userID, now, now))

		u := &entity.User{Email: "jane@example.com", Password: "hash", FirstName: "Jane", LastName: "Doe", Settings: entity.DefaultSettings()}
		repo := postgres.NewUserRepository(mock)
		require.NoError(t, repo.Create(ctx, u))

		assert.Equal(t, userID, u.ID)
		assert.Equal(t, now, u.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		repo := postgres.NewUserRepository(mock)
		err = repo.Create(ctx, &entity.User{Email: "jane@example.com"})

		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WillReturnError(errors.New("connection refused"))

		repo := postgres.NewUserRepository(mock)
		err = repo.Create(ctx, &entity.User{Email: "jane@example.com"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error creating user")
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes jsonb columns", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users WHERE id = \\$1").
			WithArgs(userID).
			WillReturnRows(userRow(
				`{"age":30,"address":{"city":"Pune"},"preferredLanguages":["en","hi"]}`,
				`[{"id":"e1","degree":"BSc","college":"MIT","fieldOfStudy":"CS","startDate":"2015-09-01T00:00:00Z"}]`,
				`[]`,
				`{"theme":"dark"}`,
			))

		repo := postgres.NewUserRepository(mock)
		u, err := repo.GetByID(ctx, userID)
		require.NoError(t, err)

		require.NotNil(t, u.Age)
		assert.Equal(t, 30, *u.Age)
		require.NotNil(t, u.Address)
		assert.Equal(t, "Pune", u.Address.City)
		assert.Equal(t, []string{"en", "hi"}, u.PreferredLanguages)
		require.Len(t, u.Education, 1)
		assert.Equal(t, "e1", u.Education[0].ID)
		assert.Nil(t, u.Education[0].EndDate)
		assert.Empty(t, u.WorkExperience)
		assert.Equal(t, "dark", u.Settings.Theme)
		assert.Equal(t, entity.DefaultLanguage, u.Settings.Language)
		assert.True(t, u.Settings.EmailNotifications)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users WHERE id = \\$1").
			WithArgs(userID).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		_, err = repo.GetByID(ctx, userID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("malformed id never reaches the database", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := postgres.NewUserRepository(mock)
		_, err = repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	bio := "hello"
	mock.ExpectQuery("UPDATE users\\s+SET first_name").
		WithArgs(userID, pgxmock.AnyArg(), pgxmock.AnyArg(), []byte(`{"bio":"hello"}`)).
		WillReturnRows(userRow(`{"bio":"hello"}`, `[]`, `[]`, `{}`))

	repo := postgres.NewUserRepository(mock)
	u, err := repo.UpdateProfile(context.Background(), userID, entity.ProfilePatch{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "hello", u.Bio)
	assert.Equal(t, "Jane", u.FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE users SET password_hash").
			WithArgs(userID, "new-hash").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewUserRepository(mock)
		require.NoError(t, repo.UpdatePassword(ctx, userID, "new-hash"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user gone", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE users SET password_hash").
			WithArgs(userID, "new-hash").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewUserRepository(mock)
		assert.ErrorIs(t, repo.UpdatePassword(ctx, userID, "new-hash"), repository.ErrNotFound)
	})
}

func TestUserRepository_Entries(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("add education appends to the jsonb array", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users SET education = education \\|\\| jsonb_build_array").
			WithArgs(userID, pgxmock.AnyArg()).
			WillReturnRows(userRow(`{}`,
				`[{"id":"e1","degree":"BSc","college":"MIT","fieldOfStudy":"CS","startDate":"2015-09-01T00:00:00Z"}]`,
				`[]`, `{}`))

		repo := postgres.NewUserRepository(mock)
		u, err := repo.AddEducation(ctx, userID, entity.Education{Degree: "BSc", College: "MIT", FieldOfStudy: "CS", StartDate: start})
		require.NoError(t, err)
		require.Len(t, u.Education, 1)
		assert.Equal(t, start, u.Education[0].StartDate)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update of unknown work entry", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users SET work_experience = \\(").
			WithArgs(userID, "missing", pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		_, err = repo.UpdateWorkExperience(ctx, userID, "missing", entity.WorkExperience{JobTitle: "Dev", StartDate: start})
		assert.ErrorIs(t, err, repository.ErrEntryNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete keeps the user when the entry is unknown", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users SET education = COALESCE").
			WithArgs(userID, "missing").
			WillReturnRows(userRow(`{}`, `[]`, `[]`, `{}`))

		repo := postgres.NewUserRepository(mock)
		u, err := repo.DeleteEducation(ctx, userID, "missing")
		require.NoError(t, err)
		assert.Equal(t, userID, u.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_UpdateSettings(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("UPDATE users SET settings").
		WithArgs(userID, pgxmock.AnyArg()).
		WillReturnRows(userRow(`{}`, `[]`, `[]`,
			`{"theme":"dark","language":"fr","emailNotifications":false,"showProfile":true}`))

	repo := postgres.NewUserRepository(mock)
	u, err := repo.UpdateSettings(context.Background(), userID, entity.Settings{Theme: "dark", Language: "fr", ShowProfile: true})
	require.NoError(t, err)

	assert.Equal(t, entity.Settings{Theme: "dark", Language: "fr", EmailNotifications: false, ShowProfile: true}, u.Settings)
	require.NoError(t, mock.ExpectationsWereMet())
}
