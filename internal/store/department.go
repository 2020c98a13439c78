package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"asset-tracker-backend/internal/model"
)

func (s *gormStore) GetAllDepartments(ctx context.Context) ([]model.Department, error) {
	var depts []model.Department
	if err := s.db.WithContext(ctx).Order("name").Find(&depts).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, nil
}

func (s *gormStore) GetDepartmentByID(ctx context.Context, id int64) (*model.Department, error) {
	var dept model.Department
	if err := s.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get department %d: %w", id, err)
	}
	return &dept, nil
}

func (s *gormStore) GetDepartmentByName(ctx context.Context, name string) (*model.Department, error) {
	var dept model.Department
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get department %q: %w", name, err)
	}
	return &dept, nil
}

func (s *gormStore) AddDepartment(ctx context.Context, dept *model.Department) error {
	if err := s.db.WithContext(ctx).Create(dept).Error; err != nil {
		return fmt.Errorf("failed to add department %q: %w", dept.Name, err)
	}
	return nil
}

func (s *gormStore) UpdateDepartment(ctx context.Context, dept *model.Department) error {
	res := s.db.WithContext(ctx).Model(&model.Department{}).Where("id = ?", dept.ID).
		Update("name", dept.Name)
	if res.Error != nil {
		return fmt.Errorf("failed to update department %d: %w", dept.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DepartmentEmployeeCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Employee{}).
		Where("department_id = ?", id).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count employees of department %d: %w", id, err)
	}
	return count, nil
}

// DeleteDepartment removes the department only when no employee references it.
// The check and the delete share one transaction so the guard cannot race a
// concurrent insert.
func (s *gormStore) DeleteDepartment(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Employee{}).Where("department_id = ?", id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count employees of department %d: %w", id, err)
		}
		if count > 0 {
			return ErrDepartmentHasEmployees
		}
		res := tx.Delete(&model.Department{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete department %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
