package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/ward-admin/internal/domain/repository"
	"github.com/oksasatya/ward-admin/pkg/helpers"
)

// ActivityService records that an authenticated user is active.
type ActivityService struct {
	Users    repo.UserRepository
	Presence Presence
	TTL      time.Duration
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewActivityService(users repo.UserRepository, presence Presence, ttl time.Duration, logger *logrus.Logger) *ActivityService {
	return &ActivityService{Users: users, Presence: presence, TTL: ttl, Logger: logger, Now: time.Now}
}

// Record refreshes the online marker and stamps last_activity_date.
// Failures are logged and never returned, so a request is never blocked.
func (s *ActivityService) Record(ctx context.Context, userID int64) {
	fields := logrus.Fields{"user_id": userID}
	if s.Presence != nil {
		if err := s.Presence.MarkOnline(ctx, userID, s.TTL); err != nil {
			helpers.LogWarn(s.Logger, "mark online failed", err, fields)
		}
	}
	if err := s.Users.TouchLastActivity(ctx, userID, s.Now()); err != nil {
		helpers.LogWarn(s.Logger, "touch last activity failed", err, fields)
	}
}
