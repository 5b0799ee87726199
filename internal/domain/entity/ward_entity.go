package entity

import "time"

// WardAssignment links a ward-manager user to a ward it administers.
// At most one row exists per (UserID, WardCode).
type WardAssignment struct {
	ID        int64
	UserID    int64
	WardCode  string
	CreatorID int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
