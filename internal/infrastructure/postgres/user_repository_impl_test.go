package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
	"github.com/oksasatya/ward-admin/internal/domain/repository"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestApproveOnlyTouchesPendingRows(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE users`).
		WithArgs("005", at, int64(1), int64(7), "000").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Approve(context.Background(), 7, entity.RoleWardManager, 1, at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveWithoutMatchingRowIsNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	at := time.Now()

	mock.ExpectExec(`UPDATE users`).
		WithArgs("001", at, int64(1), int64(7), "000").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Approve(context.Background(), 7, entity.RoleStaff, 1, at)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveSurfacesDriverErrors(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	boom := errors.New("connection reset")

	mock.ExpectExec(`UPDATE users`).WillReturnError(boom)

	err := repo.Approve(context.Background(), 7, entity.RoleStaff, 1, time.Now())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoleMissingUserIsNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE users SET user_type = \$1`).
		WithArgs("009", int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.UpdateRole(context.Background(), 42, entity.RoleDenied), repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDMapsNoRows(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.GetByID(context.Background(), 9)
	assert.Nil(t, u)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListExcludingRolePagesNewestFirst(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT count\(\*\) FROM users WHERE user_type <> \$1`).
		WithArgs("000").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`ORDER BY id DESC`).
		WithArgs("000", 20, 40).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "password_hash", "user_type", "approval_date",
			"approval_user", "last_activity_date", "created_at", "updated_at",
		}))

	users, total, err := repo.ListExcludingRole(context.Background(), entity.RolePending, 20, 40)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, users)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTouchLastActivityLeavesUpdatedAt(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	at := time.Now()

	mock.ExpectExec(`UPDATE users SET last_activity_date = \$1 WHERE id = \$2`).
		WithArgs(at, int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.TouchLastActivity(context.Background(), 5, at))
	require.NoError(t, mock.ExpectationsWereMet())
}
