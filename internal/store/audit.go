package store

import (
	"strconv"

	"asset-tracker-backend/internal/model"
)

// DiffAssets compares two snapshots of the same asset and returns one
// change-log entry per field whose display value differs. It never touches the
// database; persisting the entries is UpdateAsset's job. ChangeTime is left
// zero for the caller to stamp.
//
// Prices are compared after formatting to two decimals so representation noise
// below a fen never produces a log row.
func DiffAssets(old, new *model.Asset) []model.AssetChangeLog {
	var logs []model.AssetChangeLog
	addLog := func(field, oldVal, newVal string) {
		if oldVal == newVal {
			return
		}
		logs = append(logs, model.AssetChangeLog{
			AssetID:   new.ID,
			AssetCode: new.AssetCode,
			AssetName: new.Name,
			FieldName: field,
			OldValue:  oldVal,
			NewValue:  newVal,
		})
	}

	addLog(model.FieldAssetCode, old.AssetCode, new.AssetCode)
	addLog(model.FieldAssetName, old.Name, new.Name)
	addLog(model.FieldCategory, old.CategoryName, new.CategoryName)
	addLog(model.FieldUser, old.UserName, new.UserName)
	addLog(model.FieldPurchaseDate, old.PurchaseDate, new.PurchaseDate)
	addLog(model.FieldPrice, FormatPrice(old.Price), FormatPrice(new.Price))
	addLog(model.FieldLocation, old.Location, new.Location)
	addLog(model.FieldStatus, old.Status, new.Status)
	addLog(model.FieldRemark, old.Remark, new.Remark)

	return logs
}

// FormatPrice renders a price the way logs and exports show it.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
