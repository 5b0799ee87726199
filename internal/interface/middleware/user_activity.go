package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ActivityRecorder is satisfied by application.ActivityService.
type ActivityRecorder interface {
	Record(ctx context.Context, userID int64)
}

// UserActivity records presence and last activity for authenticated callers,
// then always continues the chain.
func UserActivity(rec ActivityRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := IdentityFrom(c); ok {
			rec.Record(c.Request.Context(), id.UserID)
		}
		c.Next()
	}
}
