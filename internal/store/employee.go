package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"asset-tracker-backend/internal/model"
)

func (s *gormStore) employeeQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&model.Employee{}).
		Select("employees.*, COALESCE(d.name, '') AS department_name").
		Joins("LEFT JOIN departments d ON employees.department_id = d.id")
}

func (s *gormStore) GetAllEmployees(ctx context.Context) ([]model.Employee, error) {
	var emps []model.Employee
	if err := s.employeeQuery(ctx).Order("employees.name").Find(&emps).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return emps, nil
}

func (s *gormStore) GetEmployeeByID(ctx context.Context, id int64) (*model.Employee, error) {
	var emp model.Employee
	if err := s.employeeQuery(ctx).Where("employees.id = ?", id).First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee %d: %w", id, err)
	}
	return &emp, nil
}

// GetEmployeesByName returns every employee with the given name. Several
// people may share a name; callers disambiguate by department.
func (s *gormStore) GetEmployeesByName(ctx context.Context, name string) ([]model.Employee, error) {
	var emps []model.Employee
	if err := s.employeeQuery(ctx).Where("employees.name = ?", name).Find(&emps).Error; err != nil {
		return nil, fmt.Errorf("failed to get employees named %q: %w", name, err)
	}
	return emps, nil
}

func (s *gormStore) SearchEmployees(ctx context.Context, q EmployeeQuery) ([]model.Employee, error) {
	query := s.employeeQuery(ctx)
	if q.Text != "" {
		query = query.Where("employees.name LIKE ?", "%"+q.Text+"%")
	}
	if q.DepartmentID != nil {
		query = query.Where("employees.department_id = ?", *q.DepartmentID)
	}
	var emps []model.Employee
	if err := query.Order("employees.name").Find(&emps).Error; err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	return emps, nil
}

func (s *gormStore) AddEmployee(ctx context.Context, emp *model.Employee) error {
	if err := s.db.WithContext(ctx).Create(emp).Error; err != nil {
		return fmt.Errorf("failed to add employee %q: %w", emp.Name, err)
	}
	return nil
}

func (s *gormStore) UpdateEmployee(ctx context.Context, emp *model.Employee) error {
	res := s.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", emp.ID).
		Updates(map[string]any{
			"name":          emp.Name,
			"department_id": emp.DepartmentID,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update employee %d: %w", emp.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEmployee releases every asset assigned to the employee (user cleared,
// status forced to 闲置) and removes the employee row. Both steps share one
// transaction; a failure in either leaves the database untouched.
func (s *gormStore) DeleteEmployee(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteEmployeeTx(tx, id)
	})
}

func deleteEmployeeTx(tx *gorm.DB, id int64) error {
	if err := tx.Model(&model.Asset{}).Where("user_id = ?", id).
		Updates(map[string]any{
			"user_id": nil,
			"status":  model.StatusIdle,
		}).Error; err != nil {
		return fmt.Errorf("failed to release assets of employee %d: %w", id, err)
	}
	res := tx.Delete(&model.Employee{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) EmployeeAssetCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Asset{}).
		Where("user_id = ?", id).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count assets of employee %d: %w", id, err)
	}
	return count, nil
}

// GetAllEmployeeAssetCounts returns employee id → assigned asset count in one
// grouped query. List views call this once instead of once per row.
func (s *gormStore) GetAllEmployeeAssetCounts(ctx context.Context) (map[int64]int64, error) {
	type row struct {
		UserID int64
		Count  int64
	}
	var rows []row
	if err := s.db.WithContext(ctx).Model(&model.Asset{}).
		Select("user_id, COUNT(*) AS count").
		Where("user_id IS NOT NULL").
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate asset counts: %w", err)
	}
	counts := make(map[int64]int64, len(rows))
	for _, r := range rows {
		counts[r.UserID] = r.Count
	}
	return counts, nil
}
