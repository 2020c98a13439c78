package csvio

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"asset-tracker-backend/internal/model"
)

// WriteXLSX writes the assets as an Excel workbook with the same columns as
// the CSV export. Prices are written as numbers so spreadsheets can sum them.
func WriteXLSX(w io.Writer, assets []model.Asset) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "资产清单"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, title := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, a := range assets {
		values := []any{
			a.AssetCode, a.Name, a.CategoryName, a.UserName, a.DepartmentName,
			a.PurchaseDate, a.Price, a.Location, a.Status, a.Remark,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write asset %s: %w", a.AssetCode, err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "J", 16); err != nil {
		return fmt.Errorf("failed to set column widths: %w", err)
	}
	return f.Write(w)
}
