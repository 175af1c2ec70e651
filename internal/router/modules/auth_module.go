package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-profile-service/internal/interface/http"
)

// AuthModule serves /auth. Register and login are public and limited per IP
// and route; /auth/me and /auth/password sit behind the protected chain.
type AuthModule struct {
	Handler   *handlers.AuthHandler
	Protected []gin.HandlerFunc
	Redis     *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client, protected ...gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb, Protected: protected}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := limitByIPAndPath(m.Redis, 10, time.Minute)
	loginLimiter := limitByIPAndPath(m.Redis, 20, time.Minute)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/auth", m.Protected...)
	{
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/password", limitByUser(m.Redis, 10, time.Minute), m.Handler.ChangePassword)
	}
}
