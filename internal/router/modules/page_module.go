package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/ward-admin/internal/interface/http"
)

type PageModule struct {
	Handler       *handlers.PageHandler
	DashboardPath string
}

func NewPageModule(h *handlers.PageHandler, dashboardPath string) *PageModule {
	return &PageModule{Handler: h, DashboardPath: dashboardPath}
}

func (m *PageModule) Register(root, _ *gin.RouterGroup) {
	root.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, m.DashboardPath) })
	root.GET(m.DashboardPath, m.Handler.Dashboard)
}
