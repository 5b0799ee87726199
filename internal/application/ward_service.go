package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/ward-admin/internal/domain/repository"
	"github.com/oksasatya/ward-admin/pkg/helpers"
)

// WardService maintains which wards each ward-manager administers.
type WardService struct {
	Wards  repo.WardRepository
	Logger *logrus.Logger
}

func NewWardService(wards repo.WardRepository, logger *logrus.Logger) *WardService {
	return &WardService{Wards: wards, Logger: logger}
}

func (s *WardService) AssignedWards(ctx context.Context, userID int64) ([]string, error) {
	return s.Wards.ListCodes(ctx, userID)
}

// ReplaceAssignedWards makes the user's assignments exactly equal to codes.
// Omitted codes are removed; kept and new codes record actorID as creator.
func (s *WardService) ReplaceAssignedWards(ctx context.Context, userID int64, codes []string, actorID int64) ([]string, error) {
	desired := NormalizeWardCodes(codes)
	fields := logrus.Fields{"user_id": userID, "ward_codes": desired}
	helpers.LogInfo(s.Logger, "replace assigned wards", fields)

	if err := s.Wards.Replace(ctx, userID, desired, actorID); err != nil {
		helpers.LogError(s.Logger, "error updating wards", err, logrus.Fields{"user_id": userID, "ward_codes": desired, "actor_id": actorID})
		return nil, err
	}
	return desired, nil
}

// NormalizeWardCodes trims, drops blanks and removes duplicates, keeping first-seen order.
func NormalizeWardCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
