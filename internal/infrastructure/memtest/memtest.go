// Package memtest provides in-memory test doubles for the repository interfaces.
// It backs the service, handler and router tests and is never wired into cmd/.
package memtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
	"github.com/oksasatya/ward-admin/internal/domain/repository"
)

type UserRepository struct {
	mu     sync.Mutex
	users  map[int64]entity.User
	nextID int64

	// Err, when set, is returned by every call.
	Err error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[int64]entity.User{}}
}

// Add stores u, assigning the next id when u.ID is zero.
func (r *UserRepository) Add(u entity.User) entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
	} else if u.ID > r.nextID {
		r.nextID = u.ID
	}
	if u.Role == "" {
		u.Role = entity.RolePending
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
		u.UpdatedAt = u.CreatedAt
	}
	r.users[u.ID] = u
	return u
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) ListByRole(_ context.Context, role entity.Role, limit, offset int) ([]entity.User, int, error) {
	return r.list(func(u entity.User) bool { return u.Role == role }, limit, offset)
}

func (r *UserRepository) ListExcludingRole(_ context.Context, role entity.Role, limit, offset int) ([]entity.User, int, error) {
	return r.list(func(u entity.User) bool { return u.Role != role }, limit, offset)
}

func (r *UserRepository) list(match func(entity.User) bool, limit, offset int) ([]entity.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}
	all := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		if match(u) {
			all = append(all, u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := len(all)
	if offset >= total {
		return []entity.User{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *UserRepository) Approve(_ context.Context, id int64, role entity.Role, approverID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.users[id]
	if !ok || u.Role != entity.RolePending {
		return repository.ErrNotFound
	}
	u.Role = role
	u.ApprovalDate = &at
	u.ApprovalUserID = &approverID
	u.UpdatedAt = at
	r.users[id] = u
	return nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id int64, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

func (r *UserRepository) TouchLastActivity(_ context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.LastActivityDate = &at
	r.users[id] = u
	return nil
}

type wardKey struct {
	userID int64
	code   string
}

type WardRepository struct {
	mu     sync.Mutex
	rows   map[wardKey]entity.WardAssignment
	nextID int64

	// Err, when set, is returned by every call.
	Err error
}

func NewWardRepository() *WardRepository {
	return &WardRepository{rows: map[wardKey]entity.WardAssignment{}}
}

func (r *WardRepository) ListCodes(_ context.Context, userID int64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	codes := []string{}
	for k := range r.rows {
		if k.userID == userID {
			codes = append(codes, k.code)
		}
	}
	sort.Strings(codes)
	return codes, nil
}

func (r *WardRepository) ListByUsers(_ context.Context, userIDs []int64) (map[int64][]entity.WardAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	want := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		want[id] = true
	}
	out := map[int64][]entity.WardAssignment{}
	for k, w := range r.rows {
		if want[k.userID] {
			out[k.userID] = append(out[k.userID], w)
		}
	}
	for id := range out {
		ws := out[id]
		sort.Slice(ws, func(i, j int) bool { return ws[i].WardCode < ws[j].WardCode })
	}
	return out, nil
}

// Get returns the stored row for (userID, code).
func (r *WardRepository) Get(userID int64, code string) (entity.WardAssignment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.rows[wardKey{userID, code}]
	return w, ok
}

func (r *WardRepository) Replace(_ context.Context, userID int64, codes []string, creatorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	keep := make(map[string]bool, len(codes))
	for _, c := range codes {
		keep[c] = true
	}
	for k := range r.rows {
		if k.userID == userID && !keep[k.code] {
			delete(r.rows, k)
		}
	}
	now := time.Now()
	for _, c := range codes {
		k := wardKey{userID, c}
		w, ok := r.rows[k]
		if !ok {
			r.nextID++
			w = entity.WardAssignment{ID: r.nextID, UserID: userID, WardCode: c, CreatedAt: now}
		}
		w.CreatorID = creatorID
		w.UpdatedAt = now
		r.rows[k] = w
	}
	return nil
}

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.WardRepository = (*WardRepository)(nil)
)
