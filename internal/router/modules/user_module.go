package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-profile-service/internal/interface/http"
)

// UserModule serves GET /users/search (protected).
type UserModule struct {
	Handler   *handlers.UserHandler
	Protected []gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, protected ...gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Protected: protected}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users", m.Protected...)
	users.GET("/search", m.Handler.Search)
}
