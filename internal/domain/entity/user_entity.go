package entity

import (
	"time"
)

// User is the aggregate root for hospital staff accounts.
// Newly registered users start as RolePending until an admin approves them.
type User struct {
	ID               int64
	Name             string
	Email            string
	Password         string
	Role             Role
	ApprovalDate     *time.Time
	ApprovalUserID   *int64
	LastActivityDate *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Wards is only populated by listings that eager load assignments.
	Wards []WardAssignment
}

// WardCodes returns the codes of the loaded ward assignments.
func (u *User) WardCodes() []string {
	out := make([]string, 0, len(u.Wards))
	for _, w := range u.Wards {
		out = append(out, w.WardCode)
	}
	return out
}
