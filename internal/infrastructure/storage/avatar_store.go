package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/go-profile-service/pkg/helpers"
)

// AvatarStore writes avatar images to a Google Cloud Storage bucket.
type AvatarStore struct {
	client *storage.Client
	bucket string
	newID  func() string
}

func NewAvatarStore(client *storage.Client, bucket string) *AvatarStore {
	return &AvatarStore{client: client, bucket: bucket, newID: uuid.NewString}
}

func (s *AvatarStore) Upload(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath(userID, s.newID(), filename), contentType, r)
}

// objectPath returns avatars/<user>/<id><ext>. Only short extensions are kept.
func objectPath(userID, id, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 5 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return path.Join("avatars", userID, id+ext)
}
