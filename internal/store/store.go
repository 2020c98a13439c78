package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"asset-tracker-backend/internal/model"
)

// Store defines the interface for all database operations. Every mutating
// operation either fully applies or fully fails; failures carry descriptive
// messages suitable for display.
type Store interface {
	DB() *gorm.DB
	Transaction(ctx context.Context, fn func(Store) error) error

	GetAllCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	AddCategory(ctx context.Context, cat *model.Category) error
	UpdateCategory(ctx context.Context, cat *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	GetAllDepartments(ctx context.Context) ([]model.Department, error)
	GetDepartmentByID(ctx context.Context, id int64) (*model.Department, error)
	GetDepartmentByName(ctx context.Context, name string) (*model.Department, error)
	AddDepartment(ctx context.Context, dept *model.Department) error
	UpdateDepartment(ctx context.Context, dept *model.Department) error
	DeleteDepartment(ctx context.Context, id int64) error
	DepartmentEmployeeCount(ctx context.Context, id int64) (int64, error)

	GetAllEmployees(ctx context.Context) ([]model.Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (*model.Employee, error)
	GetEmployeesByName(ctx context.Context, name string) ([]model.Employee, error)
	SearchEmployees(ctx context.Context, q EmployeeQuery) ([]model.Employee, error)
	AddEmployee(ctx context.Context, emp *model.Employee) error
	UpdateEmployee(ctx context.Context, emp *model.Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
	EmployeeAssetCount(ctx context.Context, id int64) (int64, error)
	GetAllEmployeeAssetCounts(ctx context.Context) (map[int64]int64, error)

	GetAllAssets(ctx context.Context) ([]model.Asset, error)
	SearchAssets(ctx context.Context, q AssetQuery) ([]model.Asset, error)
	GetAssetByID(ctx context.Context, id int64) (*model.Asset, error)
	GetAssetByCode(ctx context.Context, code string) (*model.Asset, error)
	GetLastAsset(ctx context.Context) (*model.Asset, error)
	NextAssetCode(ctx context.Context) (string, error)
	AddAsset(ctx context.Context, asset *model.Asset) error
	UpdateAsset(ctx context.Context, asset *model.Asset) error
	DeleteAsset(ctx context.Context, id int64) error
	AssetStats(ctx context.Context) (count int64, totalPrice float64, err error)

	GetChangeLogsByAssetID(ctx context.Context, assetID int64) ([]model.AssetChangeLog, error)
	GetAllChangeLogs(ctx context.Context, limit, offset int) ([]model.AssetChangeLog, error)
	SearchChangeLogs(ctx context.Context, q ChangeLogQuery) ([]model.AssetChangeLog, error)
	ChangeLogCount(ctx context.Context) (int64, error)
}

// Sentinel errors surfaced by the store; messages match what the UI shows.
var (
	ErrNotFound               = errors.New("记录不存在")
	ErrAssetNotFound          = errors.New("找不到要更新的资产")
	ErrDepartmentHasEmployees = errors.New("该部门下还有员工，无法删除")
)

// gormStore implements the Store interface using GORM over SQLite.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for callers that build their own reads.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a store bound to one transaction. Any error
// returned by fn rolls the whole scope back. Scopes are not nested.
func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
