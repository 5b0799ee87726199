package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ward-admin/internal/container"
	handlers "github.com/oksasatya/ward-admin/internal/interface/http"
	"github.com/oksasatya/ward-admin/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(root, api *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP

	root.GET("/login", m.Handler.LoginPage)
	api.POST("/login", loginLimiter, m.Handler.Login)
	api.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	api.POST("/logout", middleware.RequireIdentity(), m.Handler.Logout)
}
