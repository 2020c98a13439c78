package model

// Category is an asset classification.
type Category struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:128;not null" json:"name"`

	// Associations
	Assets []Asset `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}
