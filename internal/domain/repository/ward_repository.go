package repository

import (
	"context"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
)

// WardRepository manages ward-manager assignments.
type WardRepository interface {
	ListCodes(ctx context.Context, userID int64) ([]string, error)
	// ListByUsers returns assignments keyed by user id.
	ListByUsers(ctx context.Context, userIDs []int64) (map[int64][]entity.WardAssignment, error)
	// Replace makes the stored codes for userID exactly equal to codes, atomically.
	Replace(ctx context.Context, userID int64, codes []string, creatorID int64) error
}
