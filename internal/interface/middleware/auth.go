package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
	"github.com/oksasatya/go-profile-service/internal/domain/repository"
	"github.com/oksasatya/go-profile-service/pkg/helpers"
	"github.com/oksasatya/go-profile-service/pkg/response"
)

const notAuthorized = "Not authorized"

// UserLookup resolves the user id carried by a token.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// Auth validates the bearer token, checks that the user still exists and
// attaches a Session to the request context. Token failures abort with 401,
// store failures with 500.
func Auth(jwt *helpers.JWTManager, users UserLookup, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, http.StatusUnauthorized, notAuthorized)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, notAuthorized)
			return
		}

		if _, err := users.GetByID(c.Request.Context(), claims.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Abort(c, http.StatusUnauthorized, notAuthorized)
				return
			}
			helpers.LogError(logger, "resolve session user failed", err, logrus.Fields{
				"user_id":    claims.UserID,
				"request_id": c.GetString(CtxRequestIDKey),
			})
			response.Abort(c, http.StatusInternalServerError, "Server error")
			return
		}

		s := Session{UserID: claims.UserID}
		if claims.ExpiresAt != nil {
			s.ExpiresAt = claims.ExpiresAt.Time
		}
		c.Request = c.Request.WithContext(WithSession(c.Request.Context(), s))
		c.Set(CtxUserIDKey, s.UserID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
