package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-profile-service/config"
	"github.com/oksasatya/go-profile-service/internal/container"
	"github.com/oksasatya/go-profile-service/internal/router"
	"github.com/oksasatya/go-profile-service/pkg/helpers"
	"github.com/oksasatya/go-profile-service/pkg/validation"
)

func newEngine(t *testing.T, debug bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwt, err := helpers.NewJWTManager("router-secret", time.Hour)
	require.NoError(t, err)

	cfg := &config.Config{
		AppName:             "profile-service",
		DBDriver:            config.DriverMemory,
		AvatarMaxBytes:      1 << 20,
		ESUsersIndex:        "users",
		DebugMetricsEnabled: debug,
	}

	container.Reset()
	t.Cleanup(container.Reset)
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetJWT(jwt)

	r := router.NewEngine(cfg, logger)
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()
	return r
}

func send(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndRequestID(t *testing.T) {
	r := newEngine(t, false)
	w := send(r, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "300", w.Header().Get("X-RateLimit-Limit"))
	assert.JSONEq(t, `{"success":true,"status":"ok","dependencies":{"redis":"up"}}`, w.Body.String())
}

func TestRouter_RegisterThenProfile(t *testing.T) {
	r := newEngine(t, false)

	w := send(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "analytical",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	w = send(r, http.MethodPut, "/api/profile", reg.Token, gin.H{"bio": "first programmer"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = send(r, http.MethodGet, "/api/auth/me", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bio":"first programmer"`)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))

	w = send(r, http.MethodGet, "/api/users/search?q=ada", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"users":[]}`, w.Body.String())
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	r := newEngine(t, false)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPut, "/api/auth/password"},
		{http.MethodPut, "/api/profile"},
		{http.MethodPost, "/api/profile/education"},
		{http.MethodDelete, "/api/profile/work-experience/abc"},
		{http.MethodPut, "/api/profile/settings"},
		{http.MethodPost, "/api/profile/avatar"},
		{http.MethodGet, "/api/users/search"},
	} {
		w := send(r, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
	}
}

func TestRouter_LoginRateLimited(t *testing.T) {
	r := newEngine(t, false)
	body := gin.H{"email": "nobody@example.com", "password": "whatever"}
	for i := 0; i < 20; i++ {
		w := send(r, http.MethodPost, "/api/auth/login", "", body)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := send(r, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// register has its own budget
	w = send(r, http.MethodPost, "/api/auth/register", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_DebugToggle(t *testing.T) {
	w := send(newEngine(t, false), http.MethodGet, "/api/debug/vars", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(newEngine(t, true), http.MethodGet, "/api/debug/vars", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memstats")
}

func TestRouter_UnknownRouteUsesEnvelope(t *testing.T) {
	r := newEngine(t, false)
	w := send(r, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Route not found"}`, w.Body.String())

	w = send(r, http.MethodDelete, "/api/health", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestEngine_PanicUsesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r := router.NewEngine(&config.Config{}, logger)
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := send(r, http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Server error"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
