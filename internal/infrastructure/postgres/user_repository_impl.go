package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
	"github.com/oksasatya/ward-admin/internal/domain/repository"
)

const userColumns = `id, name, email, password_hash, user_type, approval_date, approval_user, last_activity_date, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role, &u.ApprovalDate,
		&u.ApprovalUserID, &u.LastActivityDate, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

func (r *UserRepository) ListByRole(ctx context.Context, role entity.Role, limit, offset int) ([]entity.User, int, error) {
	return r.list(ctx, "user_type = $1", role, limit, offset)
}

func (r *UserRepository) ListExcludingRole(ctx context.Context, role entity.Role, limit, offset int) ([]entity.User, int, error) {
	return r.list(ctx, "user_type <> $1", role, limit, offset)
}

func (r *UserRepository) list(ctx context.Context, where string, role entity.Role, limit, offset int) ([]entity.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE `+where, string(role)).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE `+where+`
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`, string(role), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) Approve(ctx context.Context, id int64, role entity.Role, approverID int64, at time.Time) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET user_type = $1, approval_date = $2, approval_user = $3, updated_at = $2
		WHERE id = $4 AND user_type = $5
	`, string(role), at, approverID, id, string(entity.RolePending))
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role entity.Role) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users SET user_type = $1, updated_at = now() WHERE id = $2
	`, string(role), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// TouchLastActivity does not bump updated_at; activity is not an edit.
func (r *UserRepository) TouchLastActivity(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_activity_date = $1 WHERE id = $2`, at, id)
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
