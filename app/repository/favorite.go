package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-bridal/app/entity"
)

var ErrFavoriteAlreadyExists = errors.New("favorite already exists")

type FavoriteRepository struct {
	db DBTX
}

func NewFavoriteRepository(db DBTX) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(ctx context.Context, favorite *entity.Favorite) error {
	query := `INSERT INTO favorites (user_id, plan_id, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, favorite.UserID, favorite.PlanID, favorite.CreatedAt)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrFavoriteAlreadyExists
		}
		return err
	}
	return nil
}

// Remove is a no-op when the pair does not exist.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, planID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND plan_id = ?`, userID, planID)
	return err
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, planID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM favorites WHERE user_id = ? AND plan_id = ?`, userID, planID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
