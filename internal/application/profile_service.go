package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
	repo "github.com/oksasatya/go-profile-service/internal/domain/repository"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// ProfileService holds every profile mutation. Each method acts on the
// caller's own user id only.
type ProfileService struct {
	Repo           repo.UserRepository
	Index          ProfileIndexer
	Avatars        AvatarStore
	Logger         logrus.FieldLogger
	AvatarMaxBytes int64

	effects sideEffects
}

func NewProfileService(r repo.UserRepository, index ProfileIndexer, avatars AvatarStore, notifier Notifier, logger logrus.FieldLogger, avatarMaxBytes int64) *ProfileService {
	logger = loggerOrDefault(logger)
	return &ProfileService{
		Repo:           r,
		Index:          index,
		Avatars:        avatars,
		Logger:         logger,
		AvatarMaxBytes: avatarMaxBytes,
		effects:        sideEffects{index: index, notifier: notifier, logger: logger},
	}
}

// UpdateProfile merges the supplied fields into the stored profile. An empty
// patch returns the user unchanged.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, patch entity.ProfilePatch) (*entity.User, error) {
	if patch.IsEmpty() {
		return s.get(ctx, userID)
	}
	u, err := s.Repo.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, mapUserErr(err)
	}
	s.effects.reindex(ctx, u)
	s.effects.profileUpdated(ctx, u, patch.Fields())
	return u, nil
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, e entity.Education) (*entity.User, error) {
	if err := checkDateRange(e.StartDate, e.EndDate); err != nil {
		return nil, err
	}
	u, err := s.Repo.AddEducation(ctx, userID, e)
	return s.afterEntryWrite(ctx, u, err, ErrEducationNotFound)
}

func (s *ProfileService) UpdateEducation(ctx context.Context, userID, entryID string, e entity.Education) (*entity.User, error) {
	if err := checkDateRange(e.StartDate, e.EndDate); err != nil {
		return nil, err
	}
	u, err := s.Repo.UpdateEducation(ctx, userID, entryID, e)
	return s.afterEntryWrite(ctx, u, err, ErrEducationNotFound)
}

// DeleteEducation succeeds when entryID is already absent.
func (s *ProfileService) DeleteEducation(ctx context.Context, userID, entryID string) (*entity.User, error) {
	u, err := s.Repo.DeleteEducation(ctx, userID, entryID)
	return s.afterEntryWrite(ctx, u, err, ErrEducationNotFound)
}

func (s *ProfileService) AddWorkExperience(ctx context.Context, userID string, w entity.WorkExperience) (*entity.User, error) {
	if err := checkDateRange(w.StartDate, w.EndDate); err != nil {
		return nil, err
	}
	u, err := s.Repo.AddWorkExperience(ctx, userID, w)
	return s.afterEntryWrite(ctx, u, err, ErrWorkExperienceNotFound)
}

func (s *ProfileService) UpdateWorkExperience(ctx context.Context, userID, entryID string, w entity.WorkExperience) (*entity.User, error) {
	if err := checkDateRange(w.StartDate, w.EndDate); err != nil {
		return nil, err
	}
	u, err := s.Repo.UpdateWorkExperience(ctx, userID, entryID, w)
	return s.afterEntryWrite(ctx, u, err, ErrWorkExperienceNotFound)
}

// DeleteWorkExperience succeeds when entryID is already absent.
func (s *ProfileService) DeleteWorkExperience(ctx context.Context, userID, entryID string) (*entity.User, error) {
	u, err := s.Repo.DeleteWorkExperience(ctx, userID, entryID)
	return s.afterEntryWrite(ctx, u, err, ErrWorkExperienceNotFound)
}

// UpdateSettings replaces the whole settings object; omitted fields fall back
// to their defaults rather than keeping the stored value.
func (s *ProfileService) UpdateSettings(ctx context.Context, userID string, in entity.SettingsInput) (*entity.User, error) {
	u, err := s.Repo.UpdateSettings(ctx, userID, in.Resolve())
	if err != nil {
		return nil, mapUserErr(err)
	}
	s.effects.reindex(ctx, u)
	s.effects.profileUpdated(ctx, u, []string{"settings"})
	return u, nil
}

// UploadAvatar stores an image of size bytes and points avatarUrl at it.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, r io.Reader, size int64, filename, contentType string) (*entity.User, error) {
	if s.Avatars == nil {
		return nil, ErrAvatarUnavailable
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") || size <= 0 || (s.AvatarMaxBytes > 0 && size > s.AvatarMaxBytes) {
		return nil, ErrInvalidAvatar
	}
	if _, err := s.get(ctx, userID); err != nil {
		return nil, err
	}
	url, err := s.Avatars.Upload(ctx, userID, r, filename, contentType)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.UpdateAvatar(ctx, userID, url)
	if err != nil {
		return nil, mapUserErr(err)
	}
	s.effects.reindex(ctx, u)
	return u, nil
}

// Search returns public profiles matching query. Without a configured index
// it returns an empty result.
func (s *ProfileService) Search(ctx context.Context, query string, size int) ([]entity.PublicProfile, error) {
	if s.Index == nil {
		return []entity.PublicProfile{}, nil
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	if size > maxSearchSize {
		size = maxSearchSize
	}
	out, err := s.Index.Search(ctx, strings.TrimSpace(query), size)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.PublicProfile{}
	}
	return out, nil
}

func (s *ProfileService) get(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return u, nil
}

func (s *ProfileService) afterEntryWrite(ctx context.Context, u *entity.User, err error, notFound error) (*entity.User, error) {
	if err != nil {
		if errors.Is(err, repo.ErrEntryNotFound) {
			return nil, notFound
		}
		return nil, mapUserErr(err)
	}
	s.effects.reindex(ctx, u)
	return u, nil
}

func checkDateRange(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

func mapUserErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
