package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"asset-tracker-backend/internal/model"
)

func (s *gormStore) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return cats, nil
}

func (s *gormStore) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var cat model.Category
	if err := s.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return &cat, nil
}

func (s *gormStore) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var cat model.Category
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category %q: %w", name, err)
	}
	return &cat, nil
}

// AddCategory inserts the category and assigns the new id back into cat.
// Duplicate names fail on the unique index.
func (s *gormStore) AddCategory(ctx context.Context, cat *model.Category) error {
	if err := s.db.WithContext(ctx).Create(cat).Error; err != nil {
		return fmt.Errorf("failed to add category %q: %w", cat.Name, err)
	}
	return nil
}

func (s *gormStore) UpdateCategory(ctx context.Context, cat *model.Category) error {
	res := s.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", cat.ID).
		Update("name", cat.Name)
	if res.Error != nil {
		return fmt.Errorf("failed to update category %d: %w", cat.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes the category. Assets referencing it lose their
// category link via ON DELETE SET NULL; deletion itself always succeeds.
func (s *gormStore) DeleteCategory(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
