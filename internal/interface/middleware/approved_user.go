package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
)

// ApprovedUser gates the admin screens. Anonymous callers go to loginPath,
// pending or denied users go to dashboardPath, everyone else passes.
func ApprovedUser(loginPath, dashboardPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		switch id.Role {
		case entity.RolePending, entity.RoleDenied:
			c.Redirect(http.StatusFound, dashboardPath)
			c.Abort()
			return
		case entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleWardManager, entity.RoleStaff:
			c.Next()
		default:
			// unknown codes never reach the admin screens
			c.Redirect(http.StatusFound, dashboardPath)
			c.Abort()
		}
	}
}
