package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-bridal/app/entity"
	"github.com/vibast-solutions/ms-go-bridal/app/repository"
)

type favoriteRepository interface {
	Add(ctx context.Context, favorite *entity.Favorite) error
	Remove(ctx context.Context, userID, planID string) error
	Exists(ctx context.Context, userID, planID string) (bool, error)
}

type favoritePlanRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Plan, error)
	ListFavoritedBy(ctx context.Context, userID string) ([]*entity.Plan, error)
}

type FavoriteService struct {
	favoriteRepo favoriteRepository
	planRepo     favoritePlanRepository
}

func NewFavoriteService(favoriteRepo favoriteRepository, planRepo favoritePlanRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, planRepo: planRepo}
}

// AddFavorite is idempotent: favoriting the same plan twice succeeds.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, planID string) error {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrPlanNotFound
	}

	err = s.favoriteRepo.Add(ctx, &entity.Favorite{
		UserID:    userID,
		PlanID:    planID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil && !errors.Is(err, repository.ErrFavoriteAlreadyExists) {
		return err
	}
	return nil
}

// RemoveFavorite succeeds when the plan was not a favorite.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, planID string) error {
	return s.favoriteRepo.Remove(ctx, userID, planID)
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, planID string) (bool, error) {
	return s.favoriteRepo.Exists(ctx, userID, planID)
}

// ListFavorites returns the user's favorite plans, most recently favorited first.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string) ([]*entity.Plan, error) {
	return s.planRepo.ListFavoritedBy(ctx, userID)
}
