package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"asset-tracker-backend/internal/model"
)

func (s *gormStore) assetQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&model.Asset{}).
		Select("assets.*, " +
			"COALESCE(c.name, '') AS category_name, " +
			"COALESCE(e.name, '') AS user_name, " +
			"COALESCE(d.name, '') AS department_name").
		Joins("LEFT JOIN categories c ON assets.category_id = c.id").
		Joins("LEFT JOIN employees e ON assets.user_id = e.id").
		Joins("LEFT JOIN departments d ON e.department_id = d.id")
}

func (s *gormStore) GetAllAssets(ctx context.Context) ([]model.Asset, error) {
	return s.SearchAssets(ctx, AssetQuery{})
}

func (s *gormStore) SearchAssets(ctx context.Context, q AssetQuery) ([]model.Asset, error) {
	query := s.assetQuery(ctx)
	if q.Text != "" {
		pattern := "%" + q.Text + "%"
		query = query.Where(
			"assets.asset_code LIKE ? OR assets.name LIKE ? OR e.name LIKE ? OR assets.remark LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if q.CategoryID != nil {
		query = query.Where("assets.category_id = ?", *q.CategoryID)
	}
	if q.Status != "" {
		query = query.Where("assets.status = ?", q.Status)
	}
	var assets []model.Asset
	if err := query.Order("assets.id DESC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to search assets: %w", err)
	}
	return assets, nil
}

func (s *gormStore) GetAssetByID(ctx context.Context, id int64) (*model.Asset, error) {
	var asset model.Asset
	if err := s.assetQuery(ctx).Where("assets.id = ?", id).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get asset %d: %w", id, err)
	}
	return &asset, nil
}

func (s *gormStore) GetAssetByCode(ctx context.Context, code string) (*model.Asset, error) {
	var asset model.Asset
	if err := s.assetQuery(ctx).Where("assets.asset_code = ?", code).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get asset %q: %w", code, err)
	}
	return &asset, nil
}

// GetLastAsset returns the most recently inserted asset (highest id).
func (s *gormStore) GetLastAsset(ctx context.Context) (*model.Asset, error) {
	var asset model.Asset
	if err := s.db.WithContext(ctx).Last(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get last asset: %w", err)
	}
	return &asset, nil
}

var assetCodePattern = regexp.MustCompile(`^(\D*)(\d+)$`)

// NextAssetCode derives a fresh code from the last asset's code by
// incrementing its numeric suffix, keeping prefix and digit width (ZC007 →
// ZC008). Falls back to ZC001 for an empty table or an unparseable code.
func (s *gormStore) NextAssetCode(ctx context.Context) (string, error) {
	last, err := s.GetLastAsset(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "ZC001", nil
		}
		return "", err
	}
	m := assetCodePattern.FindStringSubmatch(last.AssetCode)
	if m == nil {
		return "ZC001", nil
	}
	prefix, digits := m[1], m[2]
	var n int
	fmt.Sscanf(digits, "%d", &n)
	return fmt.Sprintf("%s%0*d", prefix, len(digits), n+1), nil
}

// AddAsset inserts the asset after applying the status assignment rule and
// assigns the new id back into asset. Duplicate codes fail on the unique
// index.
func (s *gormStore) AddAsset(ctx context.Context, asset *model.Asset) error {
	asset.Status = model.NormalizeStatus(asset.Status, asset.UserID != nil)
	if err := s.db.WithContext(ctx).Create(asset).Error; err != nil {
		return fmt.Errorf("failed to add asset %q: %w", asset.AssetCode, err)
	}
	return nil
}

// UpdateAsset replaces the full row and appends one change-log entry per
// field that differs from the stored value. The update and the log rows share
// one transaction; a failed update writes no logs.
func (s *gormStore) UpdateAsset(ctx context.Context, asset *model.Asset) error {
	old, err := s.GetAssetByID(ctx, asset.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrAssetNotFound
		}
		return err
	}

	asset.Status = model.NormalizeStatus(asset.Status, asset.UserID != nil)
	if err := s.fillDisplayNames(ctx, asset); err != nil {
		return err
	}
	logs := DiffAssets(old, asset)

	now := time.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Asset{}).Where("id = ?", asset.ID).
			Updates(map[string]any{
				"asset_code":    asset.AssetCode,
				"name":          asset.Name,
				"category_id":   asset.CategoryID,
				"user_id":       asset.UserID,
				"purchase_date": asset.PurchaseDate,
				"price":         asset.Price,
				"location":      asset.Location,
				"status":        asset.Status,
				"remark":        asset.Remark,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update asset %d: %w", asset.ID, res.Error)
		}
		if len(logs) == 0 {
			return nil
		}
		for i := range logs {
			logs[i].ChangeTime = now
		}
		if err := tx.Create(&logs).Error; err != nil {
			return fmt.Errorf("failed to record changes for asset %d: %w", asset.ID, err)
		}
		return nil
	})
}

// fillDisplayNames resolves the read-time name fields from the id references
// so the audit diff compares what a user would see.
func (s *gormStore) fillDisplayNames(ctx context.Context, asset *model.Asset) error {
	asset.CategoryName = ""
	asset.UserName = ""
	asset.DepartmentName = ""
	if asset.CategoryID != nil {
		cat, err := s.GetCategoryByID(ctx, *asset.CategoryID)
		if err != nil {
			return err
		}
		asset.CategoryName = cat.Name
	}
	if asset.UserID != nil {
		emp, err := s.GetEmployeeByID(ctx, *asset.UserID)
		if err != nil {
			return err
		}
		asset.UserName = emp.Name
		asset.DepartmentName = emp.DepartmentName
	}
	return nil
}

// DeleteAsset removes the asset; its change logs follow via ON DELETE CASCADE.
func (s *gormStore) DeleteAsset(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Asset{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete asset %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AssetStats returns the total number of assets and the sum of their prices.
func (s *gormStore) AssetStats(ctx context.Context) (int64, float64, error) {
	type row struct {
		Count int64
		Total float64
	}
	var r row
	if err := s.db.WithContext(ctx).Model(&model.Asset{}).
		Select("COUNT(*) AS count, COALESCE(SUM(price), 0) AS total").
		Scan(&r).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to compute asset stats: %w", err)
	}
	return r.Count, r.Total, nil
}
