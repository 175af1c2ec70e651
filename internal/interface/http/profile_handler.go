package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-service/internal/application"
	"github.com/oksasatya/go-profile-service/internal/domain/entity"
	"github.com/oksasatya/go-profile-service/pkg/response"
)

// AvatarField is the multipart form field carrying the image.
const AvatarField = "avatar"

// multipartOverhead is allowed on top of the image for boundaries and headers.
const multipartOverhead = 64 << 10

// ProfileHandler serves the authenticated caller's own profile.
type ProfileHandler struct {
	Svc            *application.ProfileService
	Logger         logrus.FieldLogger
	AvatarMaxBytes int64
}

func NewProfileHandler(svc *application.ProfileService, logger logrus.FieldLogger, avatarMaxBytes int64) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger, AvatarMaxBytes: avatarMaxBytes}
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	uid, ok := sessionUserID(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	h.respond(c, func() (*entity.User, error) {
		return h.Svc.UpdateProfile(c.Request.Context(), uid, req.toPatch())
	})
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	uid, ok := sessionUserID(c)
	if !ok {
		return
	}
	e, ok := bindEducation(c)
	if !ok {
		return
	}
	h.respond(c, func() (*entity.User, error) {
		return h.Svc.AddEducation(c.Request.Context(), uid, e)
	})
}

func (h *ProfileHandler) UpdateEducation(c *gin.Context) {
	uid, ok := sessionUserID(c)
	if !ok {
		return
	}
	e, ok := bindEducation(c)
	if !ok {
		return
	}
	h.respond(c, func() (*entity.User, error) {
		return h.Svc.UpdateEducation(c.Request.Context(), uid, c.Param("id"), e)
	})
}

func (h *ProfileHandler) DeleteEducation(c *gin.Context) {
	uid, ok := sessionUserID(c)
	if !ok {
		return
	}
	h.respond(c, func() (*entity.User, error) {
		return h.Svc.DeleteEducation(c.Request.Context(), uid, c.Param("id"))
	})
}

func (h *ProfileHandler) AddWorkExperience(c *gin.Context) {
	uid, ok := sessionUserID(c)
	if !ok {
		return
	}
	w, ok := bindWorkExperience(c)
	if !ok {
		return
	}
	h.respond(c, func() (*entity.User, error) {
		return h.Svc.AddWorkExperience(c.Request.Context(), uid, w)
	})
}

func (h *ProfileHandler) UpdateWorkExperience(c *gin.Context) {
	uid, ok := sessionUserID(c)
	if !ok {
		return
	}
	w, ok := bindWorkExperience(c)
	if !ok {
		return
	}
	h.respond(c, func() (*entity.User, error) {
		return h.Svc.UpdateWorkExperience(c.Request.Context(), uid, c.Param("id"), w)
	})
}

func (h *ProfileHandler) DeleteWorkExperience(c *gin.Context) {
	uid, ok := sessionUserID(c)
	if !ok {
		return
	}
	h.respond(c, func() (*entity.User, error) {
		return h.Svc.DeleteWorkExperience(c.Request.Context(), uid, c.Param("id"))
	})
}

func (h *ProfileHandler) UpdateSettings(c *gin.Context) {
	uid, ok := sessionUserID(c)
	if !ok {
		return
	}
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	h.respond(c, func() (*entity.User, error) {
		return h.Svc.UpdateSettings(c.Request.Context(), uid, req.toInput())
	})
}

// UploadAvatar accepts a multipart image in the "avatar" field. The content
// type is sniffed from the bytes, not taken from the client.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	uid, ok := sessionUserID(c)
	if !ok {
		return
	}
	if h.AvatarMaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.AvatarMaxBytes+multipartOverhead)
	}
	fh, err := c.FormFile(AvatarField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, h.Logger, application.ErrInvalidAvatar)
			return
		}
		response.Error(c, http.StatusBadRequest, "Invalid payload", map[string]string{AvatarField: "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeError(c, h.Logger, err)
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	body := io.MultiReader(bytes.NewReader(head), f)

	h.respond(c, func() (*entity.User, error) {
		return h.Svc.UploadAvatar(c.Request.Context(), uid, body, fh.Size, fh.Filename, contentType)
	})
}

func (h *ProfileHandler) respond(c *gin.Context, op func() (*entity.User, error)) {
	u, err := op()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toUserView(u)})
}

func bindEducation(c *gin.Context) (entity.Education, bool) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return entity.Education{}, false
	}
	e, details := req.toEntity()
	if details != nil {
		response.Error(c, http.StatusBadRequest, "Invalid payload", details)
		return entity.Education{}, false
	}
	return e, true
}

func bindWorkExperience(c *gin.Context) (entity.WorkExperience, bool) {
	var req workExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return entity.WorkExperience{}, false
	}
	w, details := req.toEntity()
	if details != nil {
		response.Error(c, http.StatusBadRequest, "Invalid payload", details)
		return entity.WorkExperience{}, false
	}
	return w, true
}
