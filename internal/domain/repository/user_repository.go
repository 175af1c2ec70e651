package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the persistence operations on the user document.
// Every mutation is a single atomic per-document update and returns the stored
// user after the change. Add* assigns the entry ID; Delete* is a no-op when the
// entry does not exist and only fails with ErrNotFound when the user is gone.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	UpdateProfile(ctx context.Context, id string, patch entity.ProfilePatch) (*entity.User, error)
	UpdatePassword(ctx context.Context, id string, hash string) error
	UpdateAvatar(ctx context.Context, id string, url string) (*entity.User, error)
	UpdateSettings(ctx context.Context, id string, s entity.Settings) (*entity.User, error)

	AddEducation(ctx context.Context, id string, e entity.Education) (*entity.User, error)
	UpdateEducation(ctx context.Context, id, entryID string, e entity.Education) (*entity.User, error)
	DeleteEducation(ctx context.Context, id, entryID string) (*entity.User, error)

	AddWorkExperience(ctx context.Context, id string, w entity.WorkExperience) (*entity.User, error)
	UpdateWorkExperience(ctx context.Context, id, entryID string, w entity.WorkExperience) (*entity.User, error)
	DeleteWorkExperience(ctx context.Context, id, entryID string) (*entity.User, error)
}
