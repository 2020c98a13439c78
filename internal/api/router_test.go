package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"asset-tracker-backend/config"
	"asset-tracker-backend/internal/model"
	"asset-tracker-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (store.Store, *gin.Engine) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&model.Category{}, &model.Department{}, &model.Employee{},
		&model.Asset{}, &model.AssetChangeLog{},
	))

	s := store.NewGormStore(db)
	cfg := config.Default()
	// Tests fire requests back to back; keep the limiter out of the way.
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	return s, NewRouter(s, cfg)
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCategoryEndpoints(t *testing.T) {
	_, r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/categories", gin.H{"name": "电脑设备"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Greater(t, created.ID, int64(0))

	// Duplicate names conflict.
	w = doJSON(r, http.MethodPost, "/api/categories", gin.H{"name": "电脑设备"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	path := fmt.Sprintf("/api/categories/%d", created.ID)
	w = doJSON(r, http.MethodPut, path, gin.H{"name": "办公设备"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDepartmentDeleteConflict(t *testing.T) {
	s, r := newTestRouter(t)
	ctx := context.Background()

	dept := model.Department{Name: "技术部"}
	require.NoError(t, s.AddDepartment(ctx, &dept))
	require.NoError(t, s.AddEmployee(ctx, &model.Employee{Name: "张三", DepartmentID: &dept.ID}))

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/departments/%d", dept.ID), nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "还有员工")
}

func TestAssetLifecycle(t *testing.T) {
	s, r := newTestRouter(t)
	ctx := context.Background()

	emp := model.Employee{Name: "张三"}
	require.NoError(t, s.AddEmployee(ctx, &emp))

	w := doJSON(r, http.MethodPost, "/api/assets", gin.H{
		"assetCode": "ZC001", "name": "联想笔记本电脑",
		"userId": emp.ID, "price": 6999, "purchaseDate": "2024-01-15",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Asset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, model.StatusInUse, created.Status)

	path := fmt.Sprintf("/api/assets/%d", created.ID)
	w = doJSON(r, http.MethodPut, path, gin.H{
		"assetCode": "ZC001", "name": "联想笔记本电脑",
		"userId": emp.ID, "price": 6500, "purchaseDate": "2024-01-15",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, path+"/changelogs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logs []model.AssetChangeLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, model.FieldPrice, logs[0].FieldName)
	assert.Equal(t, "6999.00", logs[0].OldValue)
	assert.Equal(t, "6500.00", logs[0].NewValue)

	w = doJSON(r, http.MethodGet, "/api/asset-stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = doJSON(r, http.MethodGet, "/api/asset-codes/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ZC002")

	w = doJSON(r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssetValidation(t *testing.T) {
	_, r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/assets", gin.H{"name": "无编号"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/assets", gin.H{"assetCode": "ZC001", "name": "x", "price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/assets/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/assets/999", gin.H{"assetCode": "ZC001", "name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAssetsFilters(t *testing.T) {
	s, r := newTestRouter(t)
	ctx := context.Background()

	cat := model.Category{Name: "电脑设备"}
	require.NoError(t, s.AddCategory(ctx, &cat))
	require.NoError(t, s.AddAsset(ctx, &model.Asset{AssetCode: "ZC001", Name: "笔记本", CategoryID: &cat.ID}))
	require.NoError(t, s.AddAsset(ctx, &model.Asset{AssetCode: "KB002", Name: "键盘", Status: model.StatusRepair}))

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/assets?category_id=%d", cat.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.Asset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "ZC001", list[0].AssetCode)

	w = doJSON(r, http.MethodGet, "/api/assets?status="+model.StatusRepair, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "KB002", list[0].AssetCode)

	w = doJSON(r, http.MethodGet, "/api/assets?category_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportAndExportEndpoints(t *testing.T) {
	_, r := newTestRouter(t)

	csvContent := "\xEF\xBB\xBF资产编号,资产名称,分类,使用人,部门,购入日期,金额,存放位置,状态,备注\n" +
		"ZC001,联想笔记本电脑,电脑设备,张三,技术部,2024-01-15,6999,3楼研发部,在用,\n" +
		"ZC002,办公桌,办公家具,,,2024-01-20,1200,2楼办公室,闲置,\n"

	var body bytes.Buffer
	mp := multipart.NewWriter(&body)
	part, err := mp.CreateFormFile("file", "assets.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvContent))
	require.NoError(t, err)
	require.NoError(t, mp.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/asset-import", &body)
	req.Header.Set("Content-Type", mp.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"imported":2`)

	w = doJSON(r, http.MethodGet, "/api/asset-export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "\xEF\xBB\xBF"))
	assert.Contains(t, w.Body.String(), "ZC001")

	w = doJSON(r, http.MethodGet, "/api/asset-export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	w = doJSON(r, http.MethodGet, "/api/asset-template", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ZC001")

	// A request without a file is rejected.
	w = doJSON(r, http.MethodPost, "/api/asset-import", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeAssetCounts(t *testing.T) {
	s, r := newTestRouter(t)
	ctx := context.Background()

	emp := model.Employee{Name: "张三"}
	require.NoError(t, s.AddEmployee(ctx, &emp))
	require.NoError(t, s.AddAsset(ctx, &model.Asset{AssetCode: "ZC001", Name: "a", UserID: &emp.ID}))
	require.NoError(t, s.AddAsset(ctx, &model.Asset{AssetCode: "ZC002", Name: "b", UserID: &emp.ID}))

	w := doJSON(r, http.MethodGet, "/api/employee-asset-counts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var counts map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	assert.Equal(t, int64(2), counts[fmt.Sprintf("%d", emp.ID)])
}

func TestChangeLogSearchEndpoint(t *testing.T) {
	s, r := newTestRouter(t)
	ctx := context.Background()

	asset := model.Asset{AssetCode: "ZC001", Name: "旧名"}
	require.NoError(t, s.AddAsset(ctx, &asset))
	renamed := asset
	renamed.Name = "新名"
	require.NoError(t, s.UpdateAsset(ctx, &renamed))

	w := doJSON(r, http.MethodGet, "/api/changelogs?q=ZC001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logs []model.AssetChangeLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "旧名", logs[0].OldValue)

	w = doJSON(r, http.MethodGet, "/api/changelogs?q=ZC999", nil)
	require.Equal(t, http.StatusOK, w.Code)
	logs = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	assert.Empty(t, logs)
}

func TestRateLimiting(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Category{}))

	cfg := config.Default()
	cfg.Server.RateLimitPerSec = 1
	cfg.Server.RateLimitBurst = 2
	r := NewRouter(store.NewGormStore(db), cfg)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		w := doJSON(r, http.MethodGet, "/api/categories", nil)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes, http.StatusTooManyRequests)
}
