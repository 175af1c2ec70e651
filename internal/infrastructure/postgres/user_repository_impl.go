package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
	"github.com/oksasatya/go-profile-service/internal/domain/repository"
)

const pgUniqueViolation = "23505"

const (
	columnEducation      = "education"
	columnWorkExperience = "work_experience"
)

const userColumns = `id::text, email, password_hash, first_name, last_name, avatar_url, profile, education, work_experience, settings, created_at, updated_at`

// DB is the subset of pgxpool.Pool used by the repository.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UserRepository stores the user document in one row; the profile, the entry
// lists and the settings live in jsonb columns so every mutation stays a
// single UPDATE.
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	for i := range u.Education {
		u.Education[i].ID = uuid.NewString()
	}
	for i := range u.WorkExperience {
		u.WorkExperience[i].ID = uuid.NewString()
	}
	profile, err := marshalProfile(u)
	if err != nil {
		return err
	}
	education, err := marshalEducation(u.Education)
	if err != nil {
		return err
	}
	work, err := marshalWorkExperience(u.WorkExperience)
	if err != nil {
		return err
	}
	settings, err := json.Marshal(toSettingsJSON(u.Settings))
	if err != nil {
		return err
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, avatar_url, profile, education, work_experience, settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id::text, created_at, updated_at
	`, u.Email, u.Password, u.FirstName, u.LastName, u.AvatarURL, profile, education, work, settings)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return r.queryUser(ctx, repository.ErrNotFound, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.queryUser(ctx, repository.ErrNotFound, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// queryUser runs a statement returning userColumns; notFound is returned when
// no row comes back.
func (r *UserRepository) queryUser(ctx context.Context, notFound error, sql string, args ...any) (*entity.User, error) {
	u := &entity.User{}
	var profile, education, work, settings []byte

	row := r.db.QueryRow(ctx, sql, args...)
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.AvatarURL,
		&profile, &education, &work, &settings, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	if err := decodeDocuments(u, profile, education, work, settings); err != nil {
		return nil, fmt.Errorf("error decoding user %s: %w", u.ID, err)
	}
	return u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, patch entity.ProfilePatch) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	profile, err := marshalProfilePatch(patch)
	if err != nil {
		return nil, err
	}
	return r.queryUser(ctx, repository.ErrNotFound, `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name  = COALESCE($3, last_name),
		    profile    = profile || $4::jsonb,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, patch.FirstName, patch.LastName, profile)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, hash string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	res, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id string, url string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return r.queryUser(ctx, repository.ErrNotFound, `
		UPDATE users SET avatar_url = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, url)
}

func (r *UserRepository) UpdateSettings(ctx context.Context, id string, s entity.Settings) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	settings, err := json.Marshal(toSettingsJSON(s))
	if err != nil {
		return nil, err
	}
	return r.queryUser(ctx, repository.ErrNotFound, `
		UPDATE users SET settings = $2::jsonb, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, settings)
}

func (r *UserRepository) AddEducation(ctx context.Context, id string, e entity.Education) (*entity.User, error) {
	e.ID = uuid.NewString()
	return r.appendEntry(ctx, id, columnEducation, toEducationJSON(e))
}

func (r *UserRepository) UpdateEducation(ctx context.Context, id, entryID string, e entity.Education) (*entity.User, error) {
	e.ID = entryID
	return r.replaceEntry(ctx, id, columnEducation, entryID, toEducationJSON(e))
}

func (r *UserRepository) DeleteEducation(ctx context.Context, id, entryID string) (*entity.User, error) {
	return r.removeEntry(ctx, id, columnEducation, entryID)
}

func (r *UserRepository) AddWorkExperience(ctx context.Context, id string, w entity.WorkExperience) (*entity.User, error) {
	w.ID = uuid.NewString()
	return r.appendEntry(ctx, id, columnWorkExperience, toWorkExperienceJSON(w))
}

func (r *UserRepository) UpdateWorkExperience(ctx context.Context, id, entryID string, w entity.WorkExperience) (*entity.User, error) {
	w.ID = entryID
	return r.replaceEntry(ctx, id, columnWorkExperience, entryID, toWorkExperienceJSON(w))
}

func (r *UserRepository) DeleteWorkExperience(ctx context.Context, id, entryID string) (*entity.User, error) {
	return r.removeEntry(ctx, id, columnWorkExperience, entryID)
}

// column is always one of the column* constants, never user input.

func (r *UserRepository) appendEntry(ctx context.Context, id, column string, entry any) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return r.queryUser(ctx, repository.ErrNotFound, fmt.Sprintf(`
		UPDATE users SET %[1]s = %[1]s || jsonb_build_array($2::jsonb), updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, column), id, b)
}

func (r *UserRepository) replaceEntry(ctx context.Context, id, column, entryID string, entry any) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrEntryNotFound
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return r.queryUser(ctx, repository.ErrEntryNotFound, fmt.Sprintf(`
		UPDATE users SET %[1]s = (
			SELECT jsonb_agg(CASE WHEN elem->>'id' = $2::text THEN $3::jsonb ELSE elem END ORDER BY pos)
			FROM jsonb_array_elements(%[1]s) WITH ORDINALITY AS t(elem, pos)
		), updated_at = now()
		WHERE id = $1 AND %[1]s @> jsonb_build_array(jsonb_build_object('id', $2::text))
		RETURNING `+userColumns, column), id, entryID, b)
}

func (r *UserRepository) removeEntry(ctx context.Context, id, column, entryID string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return r.queryUser(ctx, repository.ErrNotFound, fmt.Sprintf(`
		UPDATE users SET %[1]s = COALESCE((
			SELECT jsonb_agg(elem ORDER BY pos)
			FROM jsonb_array_elements(%[1]s) WITH ORDINALITY AS t(elem, pos)
			WHERE elem->>'id' <> $2::text
		), '[]'::jsonb), updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, column), id, entryID)
}

var _ repository.UserRepository = (*UserRepository)(nil)
