package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ward-admin/internal/application"
	"github.com/oksasatya/ward-admin/internal/domain/entity"
	"github.com/oksasatya/ward-admin/pkg/helpers"
	"github.com/oksasatya/ward-admin/pkg/response"
)

// Resolver maps an access token to its user.
type Resolver interface {
	Resolve(ctx context.Context, accessToken string) (*entity.User, error)
}

func accessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// Authenticate resolves the caller from the access_token cookie (or a Bearer header)
// and stores it as an Identity. Requests without a valid session continue anonymously.
func Authenticate(resolver Resolver, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := accessToken(c)
		if tok == "" {
			c.Next()
			return
		}
		u, err := resolver.Resolve(c.Request.Context(), tok)
		if err != nil {
			if !errors.Is(err, application.ErrInvalidCredentials) {
				helpers.LogWarn(logger, "resolve session failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
			}
			c.Next()
			return
		}
		SetIdentity(c, Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
		c.Next()
	}
}

// RequireIdentity rejects anonymous API calls with 401.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			response.Abort(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		c.Next()
	}
}
