package model

import "time"

// Change-log field labels, also the values shown in the UI and in exports.
const (
	FieldAssetCode    = "资产编号"
	FieldAssetName    = "资产名称"
	FieldCategory     = "分类"
	FieldUser         = "使用人"
	FieldPurchaseDate = "购入日期"
	FieldPrice        = "价格"
	FieldLocation     = "存放位置"
	FieldStatus       = "状态"
	FieldRemark       = "备注"
)

// AssetChangeLog is one field-level change of an asset. Rows are append-only;
// they disappear only when the parent asset is deleted (ON DELETE CASCADE).
// Code and name are denormalized at write time so history stays readable after
// the asset is renamed.
type AssetChangeLog struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	AssetID    int64     `gorm:"not null;index" json:"assetId"`
	AssetCode  string    `gorm:"size:64;not null" json:"assetCode"`
	AssetName  string    `gorm:"size:256;not null" json:"assetName"`
	FieldName  string    `gorm:"size:64;not null" json:"fieldName"`
	OldValue   string    `gorm:"size:1024" json:"oldValue"`
	NewValue   string    `gorm:"size:1024" json:"newValue"`
	ChangeTime time.Time `gorm:"not null;index" json:"changeTime"`

	// Associations
	Asset *Asset `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
