package csvio

import (
	"encoding/csv"
	"fmt"
	"io"

	"asset-tracker-backend/internal/model"
	"asset-tracker-backend/internal/store"
)

// Header is the canonical column order for import and export.
var Header = []string{
	"资产编号", "资产名称", "分类", "使用人", "部门",
	"购入日期", "金额", "存放位置", "状态", "备注",
}

// WriteCSV writes the assets as a UTF-8 CSV document with a byte-order mark,
// in the canonical column order. Prices are rendered with two decimals.
func WriteCSV(w io.Writer, assets []model.Asset) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, a := range assets {
		if err := cw.Write(assetRecord(&a)); err != nil {
			return fmt.Errorf("failed to write asset %s: %w", a.AssetCode, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func assetRecord(a *model.Asset) []string {
	return []string{
		a.AssetCode,
		a.Name,
		a.CategoryName,
		a.UserName,
		a.DepartmentName,
		a.PurchaseDate,
		store.FormatPrice(a.Price),
		a.Location,
		a.Status,
		a.Remark,
	}
}
