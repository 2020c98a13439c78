package csvio

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"asset-tracker-backend/internal/model"
)

func sampleAssets() []model.Asset {
	uid := int64(1)
	return []model.Asset{
		{
			ID: 1, AssetCode: "ZC001", Name: "联想笔记本电脑",
			CategoryName: "电脑设备", UserID: &uid, UserName: "张三",
			DepartmentName: "技术部", PurchaseDate: "2024-01-15",
			Price: 6999, Location: "3楼研发部", Status: model.StatusInUse,
		},
		{
			ID: 2, AssetCode: "ZC002", Name: "带,逗号的\"资产\"",
			PurchaseDate: "2024-02-01", Price: 1200.5,
			Status: model.StatusIdle, Remark: "多行\n备注",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleAssets()))

	raw := buf.Bytes()
	assert.True(t, bytes.HasPrefix(raw, utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(raw[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Header, records[0])

	first := records[1]
	assert.Equal(t, "ZC001", first[0])
	assert.Equal(t, "电脑设备", first[2])
	assert.Equal(t, "6999.00", first[6])

	// Commas, quotes and newlines survive the round trip.
	second := records[2]
	assert.Equal(t, "带,逗号的\"资产\"", second[1])
	assert.Equal(t, "1200.50", second[6])
	assert.Equal(t, "多行\n备注", second[9])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Header, records[0])
}

func TestTemplateContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	raw := buf.String()
	assert.True(t, strings.HasPrefix(raw, string(utf8BOM)))
	assert.True(t, strings.Contains(raw, strings.Join(Header, ",")))
	assert.Contains(t, raw, "ZC001")
	assert.Contains(t, raw, "# 填写说明")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleAssets()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "资产清单"
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "ZC001", rows[1][0])
	assert.Equal(t, "张三", rows[1][3])

	// Prices land as numbers, not strings.
	cell, err := f.GetCellValue(sheet, "G2")
	require.NoError(t, err)
	assert.Equal(t, "6999", cell)
}
