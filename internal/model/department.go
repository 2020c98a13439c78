package model

import "time"

// Department groups employees.
type Department struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	// Associations
	Employees []Employee `gorm:"foreignKey:DepartmentID" json:"-"`
}
