package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
	"github.com/oksasatya/ward-admin/internal/domain/repository"
)

type WardRepository struct {
	db DB
}

func NewWardRepository(db DB) *WardRepository {
	return &WardRepository{db: db}
}

func (r *WardRepository) ListCodes(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ward_code FROM ward_managers WHERE user_id = $1 ORDER BY ward_code
	`, userID)
	if err != nil {
		return nil, err
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if codes == nil {
		codes = []string{}
	}
	return codes, nil
}

func (r *WardRepository) ListByUsers(ctx context.Context, userIDs []int64) (map[int64][]entity.WardAssignment, error) {
	out := make(map[int64][]entity.WardAssignment, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, ward_code, creator_id, created_at, updated_at
		FROM ward_managers
		WHERE user_id = ANY($1)
		ORDER BY user_id, ward_code
	`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var w entity.WardAssignment
		if err := rows.Scan(&w.ID, &w.UserID, &w.WardCode, &w.CreatorID, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		out[w.UserID] = append(out[w.UserID], w)
	}
	return out, rows.Err()
}

// Replace deletes assignments outside codes and upserts the rest in one transaction.
func (r *WardRepository) Replace(ctx context.Context, userID int64, codes []string, creatorID int64) error {
	// a nil slice encodes as NULL and ANY(NULL) would keep every row
	if codes == nil {
		codes = []string{}
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	if err := replaceWards(ctx, tx, userID, codes, creatorID); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func replaceWards(ctx context.Context, tx pgx.Tx, userID int64, codes []string, creatorID int64) error {
	if _, err := tx.Exec(ctx, `
		DELETE FROM ward_managers
		WHERE user_id = $1 AND NOT (ward_code = ANY($2))
	`, userID, codes); err != nil {
		return fmt.Errorf("delete stale wards: %w", err)
	}
	for _, code := range codes {
		if _, err := tx.Exec(ctx, `
			INSERT INTO ward_managers (user_id, ward_code, creator_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, ward_code)
			DO UPDATE SET creator_id = EXCLUDED.creator_id, updated_at = now()
		`, userID, code, creatorID); err != nil {
			return fmt.Errorf("upsert ward %s: %w", code, err)
		}
	}
	return nil
}

var _ repository.WardRepository = (*WardRepository)(nil)
