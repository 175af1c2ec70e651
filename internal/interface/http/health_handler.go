package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-profile-service/pkg/response"
)

// Pinger checks one dependency for the health endpoint.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{Checks: checks}
}

// Health reports "ok" when every check passes and "degraded" otherwise, with
// status 200 in both cases.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	deps := gin.H{}
	for name, ping := range h.Checks {
		if err := ping(ctx); err != nil {
			status = "degraded"
			deps[name] = "down"
			continue
		}
		deps[name] = "up"
	}
	payload := gin.H{"status": status}
	if len(deps) > 0 {
		payload["dependencies"] = deps
	}
	response.Success(c, http.StatusOK, payload)
}
