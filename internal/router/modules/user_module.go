package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ward-admin/internal/container"
	handlers "github.com/oksasatya/ward-admin/internal/interface/http"
	"github.com/oksasatya/ward-admin/internal/interface/middleware"
)

// UserModule wires the user directory, approval and revocation screens.
// All routes sit behind the approved-user gate:
//
//	GET  /users, /users/search, /users/pending, /ward-managers
//	POST /users/:id/approve
//	POST|PUT /users/:id/revoke
type UserModule struct {
	Handler *handlers.UserHandler
	Gate    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, gate gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Gate: gate}
}

func (m *UserModule) Register(root, _ *gin.RouterGroup) {
	admin := root.Group("/")
	admin.Use(m.Gate)
	admin.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.GET("/users", m.Handler.List)
		admin.GET("/users/search", m.Handler.Search)
		admin.GET("/users/pending", m.Handler.Pending)
		admin.POST("/users/:id/approve", m.Handler.Approve)
		admin.POST("/users/:id/revoke", m.Handler.Revoke)
		admin.PUT("/users/:id/revoke", m.Handler.Revoke)
		admin.GET("/ward-managers", m.Handler.WardManagers)
	}
}
