package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
)

// ErrNotFound is returned when a lookup or update matches no row.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// ListByRole returns users whose role equals role, id descending.
	ListByRole(ctx context.Context, role entity.Role, limit, offset int) ([]entity.User, int, error)
	// ListExcludingRole returns users whose role differs from role, id descending.
	ListExcludingRole(ctx context.Context, role entity.Role, limit, offset int) ([]entity.User, int, error)

	// Approve moves a pending user to role and stamps the approver. It matches
	// only rows still in RolePending and returns ErrNotFound otherwise.
	Approve(ctx context.Context, id int64, role entity.Role, approverID int64, at time.Time) error
	UpdateRole(ctx context.Context, id int64, role entity.Role) error
	TouchLastActivity(ctx context.Context, id int64, at time.Time) error
}
