package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers its routes.
// root serves the server-rendered pages, api is the /api group for JSON endpoints.
type Module interface {
	Register(root, api *gin.RouterGroup)
}
