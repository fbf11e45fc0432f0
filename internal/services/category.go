package services

import (
	"context"

	"gorm.io/gorm"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(conn *gorm.DB) *CategoryService {
	return &CategoryService{db: conn}
}

// List returns every category in creation order.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}
