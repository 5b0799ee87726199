package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
	"github.com/oksasatya/ward-admin/internal/interface/middleware"
	"github.com/oksasatya/ward-admin/internal/interface/views"
	"github.com/oksasatya/ward-admin/pkg/helpers"
)

// PageHandler serves the landing pages that sit outside the approval gate.
type PageHandler struct {
	Cookies   *helpers.Manager
	LoginPath string
}

func NewPageHandler(cookieDomain string, cookieSecure bool, loginPath string) *PageHandler {
	return &PageHandler{Cookies: helpers.NewCookie(cookieDomain, cookieSecure), LoginPath: loginPath}
}

// Dashboard is reachable by any signed-in user, including those still waiting for approval.
func (h *PageHandler) Dashboard(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, h.LoginPath)
		return
	}
	data := viewData(c, h.Cookies, "Dashboard")
	data["RoleLabel"] = id.Role.Label()
	data["Waiting"] = id.Role == entity.RolePending || id.Role == entity.RoleDenied
	c.HTML(http.StatusOK, views.Dashboard, data)
}

func (h *PageHandler) NotFound(c *gin.Context) {
	renderError(c, http.StatusNotFound, "page not found")
}
