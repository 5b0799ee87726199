package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/ward-admin/internal/interface/http"
)

type WardModule struct {
	Handler *handlers.WardHandler
	Gate    gin.HandlerFunc
}

func NewWardModule(h *handlers.WardHandler, gate gin.HandlerFunc) *WardModule {
	return &WardModule{Handler: h, Gate: gate}
}

func (m *WardModule) Register(root, _ *gin.RouterGroup) {
	wards := root.Group("/ward-managers/:id/wards")
	wards.Use(m.Gate)
	{
		wards.GET("", m.Handler.Get)
		wards.POST("", m.Handler.Replace)
		wards.PUT("", m.Handler.Replace)
	}
}
