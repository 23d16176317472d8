package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"repairdesk/internal/auth"
	"repairdesk/internal/config"
	"repairdesk/internal/db"
	"repairdesk/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "secret"

type testEnv struct {
	cfg    *config.Config
	db     *gorm.DB
	deps   Deps
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.JWTSecret = testSecret
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg.Postgres.DSN = fmt.Sprintf("file:api_%s?mode=memory&cache=shared", name)

	conn, err := db.Open(cfg)
	require.NoError(t, err, "failed to open sqlite")
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	deps, err := NewDeps(cfg, logging.Discard(), conn, nil)
	require.NoError(t, err)
	return &testEnv{cfg: cfg, db: conn, deps: deps, router: SetupRouter(cfg, deps)}
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates an account over HTTP and returns its session.
func (e *testEnv) register(t *testing.T, username, password, role string) auth.Session {
	t.Helper()
	w := e.do(http.MethodPost, "/auth/register", "", RegisterRequest{Username: username, Password: password, Role: role})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var s auth.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	return s
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error
}
