package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
	repo "github.com/oksasatya/ward-admin/internal/domain/repository"
	"github.com/oksasatya/ward-admin/pkg/helpers"
)

// Presence reads and writes the ephemeral online marker.
type Presence interface {
	MarkOnline(ctx context.Context, userID int64, ttl time.Duration) error
	Online(ctx context.Context, ids []int64) (map[int64]bool, error)
}

// UserIndexer mirrors users into the search index.
type UserIndexer interface {
	Index(ctx context.Context, u entity.User) error
	IndexMany(ctx context.Context, users []entity.User) error
	Search(ctx context.Context, q string, role entity.Role, size int) ([]map[string]any, error)
}

// ApprovalNotifier tells a user their registration was approved.
type ApprovalNotifier interface {
	NotifyApproved(ctx context.Context, u entity.User) error
}

// UserRow is a listed user with its role display metadata.
type UserRow struct {
	entity.User
	RoleMeta entity.RoleMeta
	Online   bool
}

// Service covers the user directory, approval and revocation.
type Service struct {
	Users    repo.UserRepository
	Wards    repo.WardRepository
	Presence Presence
	Index    UserIndexer
	Notifier ApprovalNotifier
	Logger   *logrus.Logger
	PageSize int
	Now      func() time.Time
}

func NewService(users repo.UserRepository, wards repo.WardRepository, presence Presence, index UserIndexer, notifier ApprovalNotifier, logger *logrus.Logger, pageSize int) *Service {
	return &Service{
		Users:    users,
		Wards:    wards,
		Presence: presence,
		Index:    index,
		Notifier: notifier,
		Logger:   logger,
		PageSize: pageSize,
		Now:      time.Now,
	}
}

func (s *Service) perPage() int {
	if s.PageSize <= 0 {
		return 20
	}
	return s.PageSize
}

// ListApproved lists every user that is not pending approval, with online flags.
func (s *Service) ListApproved(ctx context.Context, page int) (entity.Page[UserRow], error) {
	page, offset := entity.Offset(page, s.perPage())
	users, total, err := s.Users.ListExcludingRole(ctx, entity.RolePending, s.perPage(), offset)
	if err != nil {
		return entity.Page[UserRow]{}, err
	}
	rows := toRows(users)
	s.attachOnline(ctx, rows)
	return entity.NewPage(rows, page, s.perPage(), total), nil
}

// ListPending lists users awaiting approval with their ward assignments.
func (s *Service) ListPending(ctx context.Context, page int) (entity.Page[UserRow], error) {
	return s.listWithWards(ctx, entity.RolePending, page)
}

// ListWardManagers lists ward-manager users with their ward assignments.
func (s *Service) ListWardManagers(ctx context.Context, page int) (entity.Page[UserRow], error) {
	return s.listWithWards(ctx, entity.RoleWardManager, page)
}

func (s *Service) listWithWards(ctx context.Context, role entity.Role, page int) (entity.Page[UserRow], error) {
	page, offset := entity.Offset(page, s.perPage())
	users, total, err := s.Users.ListByRole(ctx, role, s.perPage(), offset)
	if err != nil {
		return entity.Page[UserRow]{}, err
	}
	if len(users) > 0 {
		ids := make([]int64, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		wards, err := s.Wards.ListByUsers(ctx, ids)
		if err != nil {
			return entity.Page[UserRow]{}, err
		}
		for i := range users {
			users[i].Wards = wards[users[i].ID]
		}
	}
	return entity.NewPage(toRows(users), page, s.perPage(), total), nil
}

func toRows(users []entity.User) []UserRow {
	rows := make([]UserRow, len(users))
	for i, u := range users {
		rows[i] = UserRow{User: u, RoleMeta: u.Role.Meta()}
	}
	return rows
}

// attachOnline is best effort; a Redis outage only hides the online badge.
func (s *Service) attachOnline(ctx context.Context, rows []UserRow) {
	if s.Presence == nil || len(rows) == 0 {
		return
	}
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	online, err := s.Presence.Online(ctx, ids)
	if err != nil {
		helpers.LogWarn(s.Logger, "online lookup failed", err, logrus.Fields{"user_ids": ids})
		return
	}
	for i := range rows {
		rows[i].Online = online[rows[i].ID]
	}
}

// Search queries the user index. An empty role searches every role.
func (s *Service) Search(ctx context.Context, q string, role entity.Role, size int) ([]map[string]any, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []map[string]any{}, nil
	}
	return s.Index.Search(ctx, strings.TrimSpace(q), role, size)
}

var reindexBatch = 200

// Reindex pushes every stored user into the search index in bulk batches,
// approved users first, and returns how many documents were written.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	total := 0
	lists := []func(context.Context, entity.Role, int, int) ([]entity.User, int, error){
		s.Users.ListExcludingRole,
		s.Users.ListByRole,
	}
	for _, list := range lists {
		for offset := 0; ; offset += reindexBatch {
			users, _, err := list(ctx, entity.RolePending, reindexBatch, offset)
			if err != nil {
				return total, err
			}
			if len(users) == 0 {
				break
			}
			if err := s.Index.IndexMany(ctx, users); err != nil {
				return total, err
			}
			total += len(users)
			if len(users) < reindexBatch {
				break
			}
		}
	}
	helpers.LogInfo(s.Logger, "user index rebuilt", logrus.Fields{"documents": total})
	return total, nil
}

// Approve moves a pending user to requestedRole and stamps approverID and the current time.
func (s *Service) Approve(ctx context.Context, userID int64, requestedRole *string, approverID int64) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFoundOrInvalidState
		}
		return nil, err
	}
	if u.Role != entity.RolePending {
		return nil, ErrNotFoundOrInvalidState
	}
	if requestedRole == nil || strings.TrimSpace(*requestedRole) == "" {
		return nil, ErrMissingField
	}
	role, err := entity.ParseRole(strings.TrimSpace(*requestedRole))
	if err != nil {
		return nil, ErrInvalidRole
	}

	now := s.Now()
	if err := s.Users.Approve(ctx, userID, role, approverID, now); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// approved or removed by a concurrent request
			return nil, ErrNotFoundOrInvalidState
		}
		return nil, err
	}
	u.Role = role
	u.ApprovalDate = &now
	u.ApprovalUserID = &approverID

	helpers.LogInfo(s.Logger, "user approved", logrus.Fields{"user_id": userID, "user_type": string(role), "approver_id": approverID})
	s.afterRoleChange(ctx, *u)
	if s.Notifier != nil {
		if err := s.Notifier.NotifyApproved(ctx, *u); err != nil {
			helpers.LogWarn(s.Logger, "approval notification failed", err, logrus.Fields{"user_id": userID})
		}
	}
	return u, nil
}

// Revoke sends any user back to pending approval.
func (s *Service) Revoke(ctx context.Context, userID int64, actorID int64) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.Users.UpdateRole(ctx, userID, entity.RolePending); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	previous := u.Role
	u.Role = entity.RolePending

	helpers.LogInfo(s.Logger, "user permission revoked", logrus.Fields{"user_id": userID, "previous_user_type": string(previous), "actor_id": actorID})
	s.afterRoleChange(ctx, *u)
	return u, nil
}

func (s *Service) afterRoleChange(ctx context.Context, u entity.User) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, u); err != nil {
		helpers.LogWarn(s.Logger, "es index failed", err, logrus.Fields{"user_id": u.ID})
	}
}
