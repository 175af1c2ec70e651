package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
	"github.com/oksasatya/go-profile-service/internal/domain/repository"
)

// UserRepository keeps users in process memory. It backs DB_DRIVER=memory for
// local runs and the service/handler tests.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
	now     func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(u.Email)
	if _, ok := r.byEmail[key]; ok {
		return repository.ErrDuplicateEmail
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := r.now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	for i := range u.Education {
		if u.Education[i].ID == "" {
			u.Education[i].ID = uuid.NewString()
		}
	}
	for i := range u.WorkExperience {
		if u.WorkExperience[i].ID == "" {
			u.WorkExperience[i].ID = uuid.NewString()
		}
	}
	r.byID[u.ID] = clone(u)
	r.byEmail[key] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

// mutate runs fn on the stored user under the write lock and returns a copy.
func (r *UserRepository) mutate(id string, fn func(u *entity.User) error) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := fn(u); err != nil {
		return nil, err
	}
	u.UpdatedAt = r.now().UTC()
	return clone(u), nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id string, patch entity.ProfilePatch) (*entity.User, error) {
	return r.mutate(id, func(u *entity.User) error {
		patch.Apply(u)
		return nil
	})
}

func (r *UserRepository) UpdatePassword(_ context.Context, id string, hash string) error {
	_, err := r.mutate(id, func(u *entity.User) error {
		u.Password = hash
		return nil
	})
	return err
}

func (r *UserRepository) UpdateAvatar(_ context.Context, id string, url string) (*entity.User, error) {
	return r.mutate(id, func(u *entity.User) error {
		u.AvatarURL = url
		return nil
	})
}

func (r *UserRepository) UpdateSettings(_ context.Context, id string, s entity.Settings) (*entity.User, error) {
	return r.mutate(id, func(u *entity.User) error {
		u.Settings = s
		return nil
	})
}

func (r *UserRepository) AddEducation(_ context.Context, id string, e entity.Education) (*entity.User, error) {
	return r.mutate(id, func(u *entity.User) error {
		e.ID = uuid.NewString()
		e.EndDate = copyTime(e.EndDate)
		u.Education = append(u.Education, e)
		return nil
	})
}

func (r *UserRepository) UpdateEducation(_ context.Context, id, entryID string, e entity.Education) (*entity.User, error) {
	u, err := r.mutate(id, func(u *entity.User) error {
		i := u.EducationIndex(entryID)
		if i < 0 {
			return repository.ErrEntryNotFound
		}
		e.ID = entryID
		e.EndDate = copyTime(e.EndDate)
		u.Education[i] = e
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, repository.ErrEntryNotFound
	}
	return u, err
}

func (r *UserRepository) DeleteEducation(_ context.Context, id, entryID string) (*entity.User, error) {
	return r.mutate(id, func(u *entity.User) error {
		kept := u.Education[:0]
		for _, e := range u.Education {
			if e.ID != entryID {
				kept = append(kept, e)
			}
		}
		u.Education = kept
		return nil
	})
}

func (r *UserRepository) AddWorkExperience(_ context.Context, id string, w entity.WorkExperience) (*entity.User, error) {
	return r.mutate(id, func(u *entity.User) error {
		w.ID = uuid.NewString()
		w.EndDate = copyTime(w.EndDate)
		u.WorkExperience = append(u.WorkExperience, w)
		return nil
	})
}

func (r *UserRepository) UpdateWorkExperience(_ context.Context, id, entryID string, w entity.WorkExperience) (*entity.User, error) {
	u, err := r.mutate(id, func(u *entity.User) error {
		i := u.WorkExperienceIndex(entryID)
		if i < 0 {
			return repository.ErrEntryNotFound
		}
		w.ID = entryID
		w.EndDate = copyTime(w.EndDate)
		u.WorkExperience[i] = w
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, repository.ErrEntryNotFound
	}
	return u, err
}

func (r *UserRepository) DeleteWorkExperience(_ context.Context, id, entryID string) (*entity.User, error) {
	return r.mutate(id, func(u *entity.User) error {
		kept := u.WorkExperience[:0]
		for _, w := range u.WorkExperience {
			if w.ID != entryID {
				kept = append(kept, w)
			}
		}
		u.WorkExperience = kept
		return nil
	})
}

func clone(u *entity.User) *entity.User {
	c := *u
	if u.Age != nil {
		age := *u.Age
		c.Age = &age
	}
	if u.Address != nil {
		a := *u.Address
		c.Address = &a
	}
	if u.SocialMedia != nil {
		s := *u.SocialMedia
		c.SocialMedia = &s
	}
	c.PreferredLanguages = append([]string(nil), u.PreferredLanguages...)
	c.InterestedTopics = append([]string(nil), u.InterestedTopics...)
	c.Education = append([]entity.Education(nil), u.Education...)
	for i := range c.Education {
		c.Education[i].EndDate = copyTime(c.Education[i].EndDate)
	}
	c.WorkExperience = append([]entity.WorkExperience(nil), u.WorkExperience...)
	for i := range c.WorkExperience {
		c.WorkExperience[i].EndDate = copyTime(c.WorkExperience[i].EndDate)
	}
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

var _ repository.UserRepository = (*UserRepository)(nil)
