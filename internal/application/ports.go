package application

import (
	"context"
	"io"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
)

// ProfileIndexer keeps the search index in sync with stored profiles.
type ProfileIndexer interface {
	Index(ctx context.Context, u *entity.User) error
	Search(ctx context.Context, query string, size int) ([]entity.PublicProfile, error)
}

// AvatarStore persists avatar images and returns their public URL.
type AvatarStore interface {
	Upload(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error)
}

// Notifier queues user-facing emails.
type Notifier interface {
	Welcome(ctx context.Context, u *entity.User) error
	ProfileUpdated(ctx context.Context, u *entity.User, changed []string) error
}
