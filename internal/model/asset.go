package model

import "time"

// Asset status labels. These are the canonical stored values.
const (
	StatusInUse    = "在用"
	StatusIdle     = "闲置"
	StatusRepair   = "维修中"
	StatusScrapped = "已报废"
)

// Statuses lists all valid asset statuses.
var Statuses = []string{StatusInUse, StatusIdle, StatusRepair, StatusScrapped}

// Asset is a tracked physical item.
type Asset struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	AssetCode    string  `gorm:"uniqueIndex;size:64;not null" json:"assetCode"`
	Name         string  `gorm:"size:256;not null" json:"name"`
	CategoryID   *int64  `gorm:"index" json:"categoryId"`
	UserID       *int64  `gorm:"index" json:"userId"`
	PurchaseDate string  `gorm:"size:32" json:"purchaseDate"`
	Price        float64 `gorm:"not null;default:0" json:"price"`
	Location     string  `gorm:"size:256" json:"location"`
	Status       string  `gorm:"size:32;not null;index;default:在用" json:"status"`
	Remark       string  `gorm:"size:1024" json:"remark"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Read-time join fields, never persisted.
	CategoryName   string `gorm:"->;-:migration" json:"categoryName"`
	UserName       string `gorm:"->;-:migration" json:"userName"`
	DepartmentName string `gorm:"->;-:migration" json:"departmentName"`

	// Associations
	Category *Category `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	User     *Employee `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

// NormalizeStatus applies the assignment rule: an asset with a user cannot sit
// at 闲置 and one without a user cannot sit at 在用. Repair and scrapped
// statuses are left alone.
func NormalizeStatus(status string, hasUser bool) string {
	if status == "" {
		status = StatusInUse
	}
	switch {
	case hasUser && status == StatusIdle:
		return StatusInUse
	case !hasUser && status == StatusInUse:
		return StatusIdle
	}
	return status
}
