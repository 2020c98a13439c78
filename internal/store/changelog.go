package store

import (
	"context"
	"fmt"
	"time"

	"asset-tracker-backend/internal/model"
)

func (s *gormStore) GetChangeLogsByAssetID(ctx context.Context, assetID int64) ([]model.AssetChangeLog, error) {
	var logs []model.AssetChangeLog
	if err := s.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("change_time DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list change logs of asset %d: %w", assetID, err)
	}
	return logs, nil
}

func (s *gormStore) GetAllChangeLogs(ctx context.Context, limit, offset int) ([]model.AssetChangeLog, error) {
	query := s.db.WithContext(ctx).Order("change_time DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
		if offset > 0 {
			query = query.Offset(offset)
		}
	}
	var logs []model.AssetChangeLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list change logs: %w", err)
	}
	return logs, nil
}

func (s *gormStore) SearchChangeLogs(ctx context.Context, q ChangeLogQuery) ([]model.AssetChangeLog, error) {
	query := s.db.WithContext(ctx).Model(&model.AssetChangeLog{})
	if q.Text != "" {
		pattern := "%" + q.Text + "%"
		query = query.Where(
			"asset_code LIKE ? OR asset_name LIKE ? OR field_name LIKE ?",
			pattern, pattern, pattern)
	}
	if q.Start != "" {
		start, err := time.ParseInLocation("2006-01-02", q.Start, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", q.Start, err)
		}
		query = query.Where("change_time >= ?", start)
	}
	if q.End != "" {
		end, err := time.ParseInLocation("2006-01-02", q.End, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", q.End, err)
		}
		// Inclusive through the end of the day.
		query = query.Where("change_time < ?", end.AddDate(0, 0, 1))
	}
	var logs []model.AssetChangeLog
	if err := query.Order("change_time DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to search change logs: %w", err)
	}
	return logs, nil
}

func (s *gormStore) ChangeLogCount(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.AssetChangeLog{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count change logs: %w", err)
	}
	return count, nil
}
