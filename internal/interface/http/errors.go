package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-service/internal/application"
	"github.com/oksasatya/go-profile-service/internal/interface/middleware"
	"github.com/oksasatya/go-profile-service/pkg/helpers"
	"github.com/oksasatya/go-profile-service/pkg/response"
	"github.com/oksasatya/go-profile-service/pkg/validation"
)

const msgServerError = "Server error"

// writeError maps service errors onto the response envelope. Unknown errors
// are logged and reported as 500 without details.
func writeError(c *gin.Context, logger logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		response.Error(c, http.StatusBadRequest, "User already exists", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, application.ErrWrongPassword):
		response.Error(c, http.StatusBadRequest, "Current password is incorrect", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, application.ErrEducationNotFound):
		response.Error(c, http.StatusNotFound, "Education entry not found", nil)
	case errors.Is(err, application.ErrWorkExperienceNotFound):
		response.Error(c, http.StatusNotFound, "Work experience entry not found", nil)
	case errors.Is(err, application.ErrEntryNotFound):
		response.Error(c, http.StatusNotFound, "Entry not found", nil)
	case errors.Is(err, application.ErrInvalidDateRange):
		response.Error(c, http.StatusBadRequest, "Invalid payload", map[string]string{"endDate": "must not be before startDate"})
	case errors.Is(err, application.ErrAvatarUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "Avatar upload is not available", nil)
	case errors.Is(err, application.ErrInvalidAvatar):
		response.Error(c, http.StatusBadRequest, "Avatar must be an image within the size limit", nil)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"path":       c.FullPath(),
			"user_id":    c.GetString(middleware.CtxUserIDKey),
			"request_id": c.GetString(middleware.CtxRequestIDKey),
		})
		response.Error(c, http.StatusInternalServerError, msgServerError, nil)
	}
}

func writeBindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "Invalid payload", validation.ToDetails(err))
}

// sessionUserID returns the caller set by middleware.Auth. Handlers behind
// Auth always have one; the false branch guards misrouted handlers.
func sessionUserID(c *gin.Context) (string, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authorized", nil)
		return "", false
	}
	return s.UserID, true
}
