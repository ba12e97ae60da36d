package services

import (
	"context"

	"imoveisBack/internal/models"
	"imoveisBack/internal/repositories"
)

type FavoriteService struct {
	FavoriteRepo *repositories.FavoriteRepository
}

func (s *FavoriteService) Toggle(ctx context.Context, userID, propertyID int) (bool, error) {
	return s.FavoriteRepo.Toggle(ctx, userID, propertyID)
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, propertyID int) (bool, error) {
	return s.FavoriteRepo.IsFavorite(ctx, userID, propertyID)
}

func (s *FavoriteService) GetFavoritesByUser(ctx context.Context, userID int) ([]models.Favorite, error) {
	return s.FavoriteRepo.GetFavoritesByUser(ctx, userID)
}

func (s *FavoriteService) GetFavoriteIDsByUser(ctx context.Context, userID int) ([]int, error) {
	return s.FavoriteRepo.GetFavoriteIDsByUser(ctx, userID)
}
