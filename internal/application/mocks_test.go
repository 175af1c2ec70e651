package application_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
)

type indexerMock struct{ mock.Mock }

func (m *indexerMock) Index(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *indexerMock) Search(ctx context.Context, query string, size int) ([]entity.PublicProfile, error) {
	args := m.Called(ctx, query, size)
	out, _ := args.Get(0).([]entity.PublicProfile)
	return out, args.Error(1)
}

type notifierMock struct{ mock.Mock }

func (m *notifierMock) Welcome(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *notifierMock) ProfileUpdated(ctx context.Context, u *entity.User, changed []string) error {
	return m.Called(ctx, u, changed).Error(0)
}

type avatarStoreMock struct{ mock.Mock }

func (m *avatarStoreMock) Upload(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	args := m.Called(ctx, userID, r, filename, contentType)
	return args.String(0), args.Error(1)
}
