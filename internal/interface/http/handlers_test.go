package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/ward-admin/internal/application"
	"github.com/oksasatya/ward-admin/internal/domain/entity"
	"github.com/oksasatya/ward-admin/internal/infrastructure/memtest"
	"github.com/oksasatya/ward-admin/internal/interface/middleware"
	"github.com/oksasatya/ward-admin/internal/interface/views"
	"github.com/oksasatya/ward-admin/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type harness struct {
	users  *memtest.UserRepository
	wards  *memtest.WardRepository
	actor  entity.User
	engine *gin.Engine
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{users: memtest.NewUserRepository(), wards: memtest.NewWardRepository()}
	h.actor = h.users.Add(entity.User{Name: "Admin", Email: "admin@example.test", Role: entity.RoleSuperAdmin})

	logger := quietLogger()
	svc := application.NewService(h.users, h.wards, nil, nil, nil, logger, 2)
	uh := NewUserHandler(svc, logger, "", false)
	wh := NewWardHandler(application.NewWardService(h.wards, logger))
	ph := NewPageHandler("", false, "/login")

	r := gin.New()
	require.NoError(t, views.Install(r))
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Anonymous") == "" {
			middleware.SetIdentity(c, middleware.Identity{UserID: h.actor.ID, Name: h.actor.Name, Role: h.actor.Role})
		}
		c.Next()
	})
	r.GET("/users", uh.List)
	r.GET("/users/search", uh.Search)
	r.GET("/users/pending", uh.Pending)
	r.POST("/users/:id/approve", uh.Approve)
	r.POST("/users/:id/revoke", uh.Revoke)
	r.GET("/ward-managers", uh.WardManagers)
	r.GET("/ward-managers/:id/wards", wh.Get)
	r.PUT("/ward-managers/:id/wards", wh.Replace)
	r.GET("/dashboard", ph.Dashboard)
	h.engine = r
	return h
}

func (h *harness) do(method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Meta    map[string]any  `json:"meta"`

	WardCodes []string `json:"ward_codes"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestApproveMovesPendingUser(t *testing.T) {
	h := newHarness(t)
	u := h.users.Add(entity.User{Name: "New Hire", Email: "new@example.test"})

	w := h.do(http.MethodPost, "/users/"+itoa(u.ID)+"/approve", `{"user_type":"005"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "user approved", env.Message)

	stored, err := h.users.GetByID(t.Context(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleWardManager, stored.Role)
	require.NotNil(t, stored.ApprovalUserID)
	assert.Equal(t, h.actor.ID, *stored.ApprovalUserID)
	assert.NotNil(t, stored.ApprovalDate)
}

func TestApproveFailures(t *testing.T) {
	h := newHarness(t)
	pending := h.users.Add(entity.User{Name: "Pending", Email: "p@example.test"})
	staff := h.users.Add(entity.User{Name: "Staff", Email: "s@example.test", Role: entity.RoleStaff})

	cases := []struct {
		name string
		path string
		body string
		code int
	}{
		{"already approved", "/users/" + itoa(staff.ID) + "/approve", `{"user_type":"005"}`, http.StatusNotFound},
		{"unknown user", "/users/999/approve", `{"user_type":"005"}`, http.StatusNotFound},
		{"bad id", "/users/abc/approve", `{"user_type":"005"}`, http.StatusNotFound},
		{"empty body", "/users/" + itoa(pending.ID) + "/approve", "", http.StatusBadRequest},
		{"missing field", "/users/" + itoa(pending.ID) + "/approve", `{}`, http.StatusBadRequest},
		{"blank field", "/users/" + itoa(pending.ID) + "/approve", `{"user_type":""}`, http.StatusBadRequest},
		{"unknown role", "/users/" + itoa(pending.ID) + "/approve", `{"user_type":"999"}`, http.StatusBadRequest},
		{"malformed", "/users/" + itoa(pending.ID) + "/approve", `{"user_type":`, http.StatusBadRequest},
		{"wrong type", "/users/" + itoa(pending.ID) + "/approve", `{"user_type":5}`, http.StatusBadRequest},
		{"wrong type on approved user", "/users/" + itoa(staff.ID) + "/approve", `{"user_type":5}`, http.StatusNotFound},
		{"wrong type on unknown user", "/users/999/approve", `{"user_type":5}`, http.StatusNotFound},
		{"malformed on approved user", "/users/" + itoa(staff.ID) + "/approve", `{"user_type":`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := h.do(http.MethodPost, tc.path, tc.body, nil)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error, "error key must be present")
			assert.NotEqual(t, "null", string(env.Error))
		})
	}

	w := h.do(http.MethodPost, "/users/"+itoa(staff.ID)+"/approve", `{"user_type":"005"}`, nil)
	assert.JSONEq(t, `"`+application.ErrNotFoundOrInvalidState.Error()+`"`, string(decode(t, w).Error))

	w = h.do(http.MethodPost, "/users/"+itoa(pending.ID)+"/approve", `{"user_type":5}`, nil)
	assert.Contains(t, string(decode(t, w).Error), "user_type")

	stored, err := h.users.GetByID(t.Context(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RolePending, stored.Role)
	assert.Nil(t, stored.ApprovalDate)
}

func TestApproveStoreFailureIs500(t *testing.T) {
	h := newHarness(t)
	u := h.users.Add(entity.User{Name: "Pending", Email: "p@example.test"})
	h.users.Err = errors.New("db down")

	w := h.do(http.MethodPost, "/users/"+itoa(u.ID)+"/approve", `{"user_type":"001"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRevokeRedirectsBackWithFlash(t *testing.T) {
	h := newHarness(t)
	u := h.users.Add(entity.User{Name: "Nurse", Email: "n@example.test", Role: entity.RoleStaff})

	w := h.do(http.MethodPost, "/users/"+itoa(u.ID)+"/revoke", "", map[string]string{"Referer": "http://example.com/users?page=2"})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/users?page=2", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "flash_success=")

	stored, err := h.users.GetByID(t.Context(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RolePending, stored.Role)
}

func TestRevokeFallbacks(t *testing.T) {
	h := newHarness(t)
	u := h.users.Add(entity.User{Name: "Nurse", Email: "n@example.test", Role: entity.RoleAdmin})

	w := h.do(http.MethodPost, "/users/"+itoa(u.ID)+"/revoke", "", nil)
	assert.Equal(t, "/users", w.Header().Get("Location"))

	w = h.do(http.MethodPost, "/users/"+itoa(u.ID)+"/revoke", "", map[string]string{"Referer": "https://evil.test/phish"})
	assert.Equal(t, "/users", w.Header().Get("Location"))

	// revoking a pending user is allowed and idempotent
	w = h.do(http.MethodPost, "/users/"+itoa(u.ID)+"/revoke", "", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = h.do(http.MethodPost, "/users/999/revoke", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestListingsRenderPartitions(t *testing.T) {
	h := newHarness(t)
	h.users.Add(entity.User{Name: "Waiting Person", Email: "w@example.test"})
	mgr := h.users.Add(entity.User{Name: "Ward Boss", Email: "m@example.test", Role: entity.RoleWardManager})
	require.NoError(t, h.wards.Replace(t.Context(), mgr.ID, []string{"E1"}, h.actor.ID))

	w := h.do(http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ward Boss")
	assert.NotContains(t, w.Body.String(), "Waiting Person")

	w = h.do(http.MethodGet, "/users/pending", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Waiting Person")
	assert.NotContains(t, w.Body.String(), "Ward Boss")

	w = h.do(http.MethodGet, "/ward-managers?page=0", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ward Boss")
	assert.Contains(t, w.Body.String(), `value="E1"`)
}

func TestListingStoreFailureRendersErrorPage(t *testing.T) {
	h := newHarness(t)
	h.users.Err = errors.New("db down")
	w := h.do(http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "could not load users")
}

func TestReplaceWardsIsDeclarative(t *testing.T) {
	h := newHarness(t)
	mgr := h.users.Add(entity.User{Name: "Ward Boss", Email: "m@example.test", Role: entity.RoleWardManager})
	path := "/ward-managers/" + itoa(mgr.ID) + "/wards"

	require.Equal(t, http.StatusOK, h.do(http.MethodPut, path, `{"ward_codes":["A","B"]}`, nil).Code)
	w := h.do(http.MethodPut, path, `{"ward_codes":["B","C"," C ",""]}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "wards updated", decode(t, w).Message)

	w = h.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, []string{"B", "C"}, env.WardCodes)
	assert.Contains(t, w.Body.String(), `"ward_codes":["B","C"]`)
	assert.Empty(t, env.Data)

	// no list clears everything
	require.Equal(t, http.StatusOK, h.do(http.MethodPut, path, "", nil).Code)
	codes, err := h.wards.ListCodes(t.Context(), mgr.ID)
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestReplaceWardsFailures(t *testing.T) {
	h := newHarness(t)
	path := "/ward-managers/5/wards"

	w := h.do(http.MethodGet, "/ward-managers/abc/wards", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, decode(t, w).Error)

	w = h.do(http.MethodPut, path, `{"ward_codes":["病棟"]}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(decode(t, w).Error), "ward_codes[0]")

	h.wards.Err = errors.New("connection reset")
	w = h.do(http.MethodPut, path, `{"ward_codes":["A"]}`, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.Equal(t, "failed to update wards", env.Message)
	assert.Contains(t, string(env.Error), "connection reset")
}

func TestSearchValidatesRole(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/users/search?q=sato&role=123", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(decode(t, w).Error), "role")

	w = h.do(http.MethodGet, "/users/search?q=sato&role=005", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w).Meta["count"])
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/dashboard", "", map[string]string{"X-Anonymous": "1"})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = h.do(http.MethodGet, "/dashboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Role: Super admin")
}
