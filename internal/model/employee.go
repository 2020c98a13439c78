package model

import "time"

// Employee is a person assets can be assigned to. Names are not unique;
// callers disambiguate by department.
type Employee struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:128;not null;index" json:"name"`
	DepartmentID *int64 `gorm:"index" json:"departmentId"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Read-time join field, never persisted.
	DepartmentName string `gorm:"->;-:migration" json:"departmentName"`

	// Associations
	Department *Department `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}
