package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-profile-service/internal/interface/http"
)

// ProfileModule wires the caller's own profile routes under /profile.
// All routes are protected; avatar uploads get a tighter per-user budget.
type ProfileModule struct {
	Handler   *handlers.ProfileHandler
	Protected []gin.HandlerFunc
	Redis     *redis.Client
}

func NewProfileModule(h *handlers.ProfileHandler, rdb *redis.Client, protected ...gin.HandlerFunc) *ProfileModule {
	return &ProfileModule{Handler: h, Redis: rdb, Protected: protected}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	p := rg.Group("/profile", m.Protected...)
	{
		p.PUT("", m.Handler.UpdateProfile)
		p.PUT("/settings", m.Handler.UpdateSettings)
		p.POST("/avatar", limitByUser(m.Redis, 10, time.Hour), m.Handler.UploadAvatar)

		p.POST("/education", m.Handler.AddEducation)
		p.PUT("/education/:id", m.Handler.UpdateEducation)
		p.DELETE("/education/:id", m.Handler.DeleteEducation)

		p.POST("/work-experience", m.Handler.AddWorkExperience)
		p.PUT("/work-experience/:id", m.Handler.UpdateWorkExperience)
		p.DELETE("/work-experience/:id", m.Handler.DeleteWorkExperience)
	}
}
