package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ward-admin/internal/application"
	"github.com/oksasatya/ward-admin/internal/interface/middleware"
	"github.com/oksasatya/ward-admin/internal/interface/views"
	"github.com/oksasatya/ward-admin/pkg/helpers"
	"github.com/oksasatya/ward-admin/pkg/response"
	"github.com/oksasatya/ward-admin/pkg/validation"
)

type AuthHandler struct {
	Svc           *application.AuthService
	Logger        *logrus.Logger
	Cookies       *helpers.Manager
	DashboardPath string
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool, dashboardPath string) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure), DashboardPath: dashboardPath}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginPage renders the sign-in form; signed-in users go straight to the dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if _, ok := middleware.IdentityFrom(c); ok {
		c.Redirect(http.StatusFound, h.DashboardPath)
		return
	}
	data := viewData(c, h.Cookies, "Sign in")
	data["Next"] = h.DashboardPath
	c.HTML(http.StatusOK, views.Login, data)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			helpers.LogWarn(h.Logger, "login rejected", nil, logrus.Fields{"ip": middleware.ClientIP(c), "request_id": c.GetString("request_id")})
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"user_type":  u.Role,
		"role_label": u.Role.Label(),
	}, "login successful", map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		h.Cookies.Clear(c)
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, map[string]any{"refreshed": true}, "token refreshed", map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	if err := h.Svc.Logout(c.Request.Context(), id.UserID); err != nil {
		helpers.LogWarn(h.Logger, "delete session failed", err, logrus.Fields{"user_id": id.UserID})
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}
