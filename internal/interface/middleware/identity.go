package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
)

const (
	ctxIdentityKey = "identity"
	// CtxUserIDKey holds the user id as a string for rate-limit keys and logs.
	CtxUserIDKey = "userID"
)

// Identity is the caller resolved once per request by Authenticate.
type Identity struct {
	UserID int64
	Name   string
	Email  string
	Role   entity.Role
}

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(ctxIdentityKey, id)
	c.Set(CtxUserIDKey, strconv.FormatInt(id.UserID, 10))
}

// IdentityFrom returns the authenticated caller, if any.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
