package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"project-records/internal/config"
	"project-records/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t       *testing.T
	r       *gin.Engine
	cookies []*http.Cookie
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (a *apiClient) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		a.cookies = cookies
	}

	var env envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func newTestServer(t *testing.T, authRequired bool) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppEnv:        "test",
		DBDriver:      config.DriverSQLite,
		DBDSN:         filepath.Join(t.TempDir(), "api.db"),
		LogLevel:      "silent",
		SessionSecret: "test-secret",
		AuthRequired:  authRequired,
		CORSOrigins:   []string{"*"},
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.EnsureAdmin(db, "admin@test.local", "Admin123!"))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &apiClient{t: t, r: NewRouter(cfg, db)}
}

type projectResp struct {
	ID            uint    `json:"id"`
	ProjectNumber string  `json:"project_number"`
	CustomerName  string  `json:"customer_name"`
	LeaderName    string  `json:"leader_name"`
	Status        string  `json:"status"`
	EndDate       *string `json:"end_date"`
}

func TestProjectAPI(t *testing.T) {
	api := newTestServer(t, false)

	w, env := api.do(http.MethodPost, "/api/employees", map[string]any{
		"first_name": "Lars", "last_name": "Lead", "email": "lars@corp.test", "role_name": "Project Manager",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	leader := decode[struct {
		ID       uint   `json:"id"`
		RoleName string `json:"role_name"`
	}](t, env.Data)
	assert.Equal(t, "Project Manager", leader.RoleName)

	projectBody := func(customer, email string) map[string]any {
		return map[string]any{
			"customer_name": customer,
			"first_name":    "Anna",
			"last_name":     "Berg",
			"email":         email,
			"leader_id":     leader.ID,
		}
	}

	w, env = api.do(http.MethodPost, "/api/projects", projectBody("Acme AB", "anna@acme.test"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[projectResp](t, env.Data)
	assert.Equal(t, "P-1", created.ProjectNumber)
	assert.Equal(t, "Acme AB", created.CustomerName)
	assert.Equal(t, "Lars Lead", created.LeaderName)
	assert.Equal(t, "Active", created.Status)
	assert.Equal(t, fmt.Sprintf("/api/projects/%d", created.ID), w.Header().Get("Location"))

	t.Run("validation failures are 400", func(t *testing.T) {
		w, _ := api.do(http.MethodPost, "/api/projects", map[string]any{"customer_name": "Acme AB"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		body := projectBody("", "x@acme.test")
		w, _ = api.do(http.MethodPost, "/api/projects", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		body = projectBody("Acme AB", "not-an-email")
		w, _ = api.do(http.MethodPost, "/api/projects", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		body = projectBody("Acme AB", "x@acme.test")
		body["status"] = "Archived"
		w, _ = api.do(http.MethodPost, "/api/projects", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown leader is 400", func(t *testing.T) {
		body := projectBody("Acme AB", "x@acme.test")
		body["leader_id"] = 999
		w, env := api.do(http.MethodPost, "/api/projects", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, env.Error, "999")
	})

	t.Run("get and list", func(t *testing.T) {
		w, env := api.do(http.MethodGet, fmt.Sprintf("/api/projects/%d", created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, created.ProjectNumber, decode[projectResp](t, env.Data).ProjectNumber)

		w, _ = api.do(http.MethodGet, "/api/projects/9999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, _ = api.do(http.MethodGet, "/api/projects/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w, env = api.do(http.MethodGet, "/api/projects?status=Active", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]projectResp](t, env.Data), 1)

		w, _ = api.do(http.MethodGet, "/api/projects?status=Nope", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		body := projectBody("Acme AB", "anna@acme.test")
		body["status"] = "Completed"
		w, env := api.do(http.MethodPut, fmt.Sprintf("/api/projects/%d", created.ID), body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		done := decode[projectResp](t, env.Data)
		assert.Equal(t, "Completed", done.Status)
		assert.NotNil(t, done.EndDate)

		w, _ = api.do(http.MethodPut, fmt.Sprintf("/api/projects/%d", created.ID), projectBody("Initech", "anna@acme.test"))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w, _ = api.do(http.MethodPut, fmt.Sprintf("/api/projects/%d", created.ID), projectBody("Acme AB", "other@acme.test"))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w, _ = api.do(http.MethodPut, "/api/projects/9999", projectBody("Acme AB", "anna@acme.test"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("services", func(t *testing.T) {
		path := fmt.Sprintf("/api/projects/%d/services", created.ID)
		w, env := api.do(http.MethodPost, path, map[string]any{"name": "Audit", "price": 1500})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		svc := decode[struct {
			ID uint `json:"id"`
		}](t, env.Data)

		w, _ = api.do(http.MethodPost, "/api/projects/9999/services", map[string]any{"name": "Ghost", "price": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w, _ = api.do(http.MethodPost, path, map[string]any{"name": "Negative", "price": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w, env = api.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]json.RawMessage](t, env.Data), 1)

		w, _ = api.do(http.MethodPut, fmt.Sprintf("/api/services/%d", svc.ID), map[string]any{"price": 1750})
		assert.Equal(t, http.StatusOK, w.Code)

		w, _ = api.do(http.MethodGet, "/api/services", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/services/%d", svc.ID), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = api.do(http.MethodGet, fmt.Sprintf("/api/services/%d", svc.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("customers", func(t *testing.T) {
		w, env := api.do(http.MethodGet, "/api/customers", nil)
		require.Equal(t, http.StatusOK, w.Code)
		customers := decode[[]struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		}](t, env.Data)
		require.Len(t, customers, 1)

		w, _ = api.do(http.MethodGet, fmt.Sprintf("/api/customers/%d/contacts", customers[0].ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w, _ = api.do(http.MethodGet, "/api/customers/9999/contacts", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("leader in use cannot be deleted", func(t *testing.T) {
		w, _ := api.do(http.MethodDelete, fmt.Sprintf("/api/employees/%d", leader.ID), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w, _ := api.do(http.MethodDelete, fmt.Sprintf("/api/projects/%d", created.ID), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/projects/%d", created.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/employees/%d", leader.ID), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestAuthFlow(t *testing.T) {
	api := newTestServer(t, true)

	w, _ := api.do(http.MethodGet, "/api/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = api.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "admin@test.local", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := api.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "admin@test.local", "password": "Admin123!"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "admin", decode[struct {
		Role string `json:"role"`
	}](t, env.Data).Role)

	w, _ = api.do(http.MethodGet, "/api/projects", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = api.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "admin@test.local")

	w, _ = api.do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(http.MethodGet, "/api/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestServer(t, true)

	w, _ := api.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w, _ = api.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "records_http_requests_total")
}
