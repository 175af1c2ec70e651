package application_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-profile-service/internal/application"
	"github.com/oksasatya/go-profile-service/internal/infrastructure/memory"
	"github.com/oksasatya/go-profile-service/pkg/helpers"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAuthService(t *testing.T, index application.ProfileIndexer, notifier application.Notifier) (*application.AuthService, *helpers.JWTManager) {
	t.Helper()
	jwt, err := helpers.NewJWTManager("test-secret", time.Hour)
	require.NoError(t, err)
	return application.NewAuthService(memory.NewUserRepository(), jwt, index, notifier, quietLogger()), jwt
}

func registerInput() application.RegisterInput {
	return application.RegisterInput{FirstName: "Jane", LastName: "Doe", Email: "Jane@Example.com", Password: "s3cret-pass"}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user, signs token and runs side effects", func(t *testing.T) {
		index := new(indexerMock)
		notifier := new(notifierMock)
		index.On("Index", mock.Anything, mock.Anything).Return(nil).Once()
		notifier.On("Welcome", mock.Anything, mock.Anything).Return(nil).Once()

		svc, jwt := newAuthService(t, index, notifier)
		res, err := svc.Register(ctx, registerInput())
		require.NoError(t, err)

		assert.Equal(t, "jane@example.com", res.User.Email)
		assert.NotEqual(t, "s3cret-pass", res.User.Password)
		assert.True(t, helpers.CompareHashAndPassword(res.User.Password, "s3cret-pass"))

		claims, err := jwt.ParseToken(res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, claims.UserID)

		index.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newAuthService(t, nil, nil)
		_, err := svc.Register(ctx, registerInput())
		require.NoError(t, err)

		in := registerInput()
		in.Email = "  JANE@example.com "
		_, err = svc.Register(ctx, in)
		assert.ErrorIs(t, err, application.ErrEmailTaken)
	})

	t.Run("side effect failures do not fail registration", func(t *testing.T) {
		index := new(indexerMock)
		notifier := new(notifierMock)
		index.On("Index", mock.Anything, mock.Anything).Return(errors.New("es down"))
		notifier.On("Welcome", mock.Anything, mock.Anything).Return(errors.New("amqp down"))

		svc, _ := newAuthService(t, index, notifier)
		_, err := svc.Register(ctx, registerInput())
		assert.NoError(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t, nil, nil)
	reg, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	res, err := svc.Login(ctx, "jane@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)

	_, wrongPass := svc.Login(ctx, "jane@example.com", "nope")
	_, unknown := svc.Login(ctx, "ghost@example.com", "s3cret-pass")
	assert.ErrorIs(t, wrongPass, application.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, application.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestAuthService_MeAndChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t, nil, nil)
	reg, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	me, err := svc.Me(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", me.FirstName)

	_, err = svc.Me(ctx, "missing")
	assert.ErrorIs(t, err, application.ErrUserNotFound)

	err = svc.ChangePassword(ctx, reg.User.ID, "wrong", "next-pass")
	assert.ErrorIs(t, err, application.ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, reg.User.ID, "s3cret-pass", "next-pass"))
	_, err = svc.Login(ctx, "jane@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "jane@example.com", "next-pass")
	assert.NoError(t, err)
}
