package csvio

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"asset-tracker-backend/internal/model"
	"asset-tracker-backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
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
	return store.NewGormStore(db)
}

const sampleCSV = `资产编号,资产名称,分类,使用人,部门,购入日期,金额,存放位置,状态,备注
ZC001,联想笔记本电脑,电脑设备,张三,技术部,2024-01-15,6999,3楼研发部,在用,
ZC002,办公桌,办公家具,李四,行政部,2024-01-20,1200,2楼办公室,在用,
ZC003,打印机,电子设备,,,2024-02-01,3500,1楼前台,闲置,待分配
`

// utf8CSV marks the content as UTF-8. Unmarked input goes through the GBK
// decoder.
func utf8CSV(content string) io.Reader {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	buf.WriteString(content)
	return &buf
}

func TestImportCreatesAssetsAndReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	im := NewImporter(s, 10)

	sum, err := im.Import(ctx, utf8CSV(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Imported)
	assert.Zero(t, sum.Skipped)
	assert.Empty(t, sum.Messages)

	a, err := s.GetAssetByCode(ctx, "ZC001")
	require.NoError(t, err)
	assert.Equal(t, "联想笔记本电脑", a.Name)
	assert.Equal(t, 6999.0, a.Price)
	assert.Equal(t, model.StatusInUse, a.Status)

	full, err := s.GetAssetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "电脑设备", full.CategoryName)
	assert.Equal(t, "张三", full.UserName)
	assert.Equal(t, "技术部", full.DepartmentName)

	cats, err := s.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)
	depts, err := s.GetAllDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, depts, 2)
	emps, err := s.GetAllEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, emps, 2)

	// Bulk creates leave no audit trail.
	count, err := s.ChangeLogCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestImportSkipsExistingCodes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	im := NewImporter(s, 10)

	sum, err := im.Import(ctx, utf8CSV(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, sum.Imported)

	sum, err = im.Import(ctx, utf8CSV(sampleCSV))
	require.NoError(t, err)
	assert.Zero(t, sum.Imported)
	assert.Equal(t, 3, sum.Skipped)
	require.Len(t, sum.Messages, 3)
	assert.Contains(t, sum.Messages[0], "ZC001")

	// Re-importing must not duplicate the referenced entities either.
	cats, err := s.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)
	emps, err := s.GetAllEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, emps, 2)
}

func TestImportGBKInput(t *testing.T) {
	s := newTestStore(t)
	im := NewImporter(s, 10)

	gbk, _, err := transform.String(simplifiedchinese.GBK.NewEncoder(), sampleCSV)
	require.NoError(t, err)

	sum, err := im.Import(context.Background(), strings.NewReader(gbk))
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Imported)

	a, err := s.GetAssetByCode(context.Background(), "ZC002")
	require.NoError(t, err)
	assert.Equal(t, "办公桌", a.Name)
}

func TestImportTemplateDocument(t *testing.T) {
	s := newTestStore(t)
	im := NewImporter(s, 10)

	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	// The shipped template imports cleanly: comments and the blank line are
	// ignored, the three sample rows land.
	sum, err := im.Import(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Imported)
	assert.Empty(t, sum.Messages)

	a, err := s.GetAssetByCode(context.Background(), "ZC003")
	require.NoError(t, err)
	assert.Equal(t, model.StatusIdle, a.Status)
	assert.Nil(t, a.UserID)
}

func TestImportRowProblems(t *testing.T) {
	s := newTestStore(t)
	im := NewImporter(s, 10)

	input := "资产编号,资产名称\n" +
		",无编号资产\n" + // missing code
		"ZC001,\n" + // missing name
		"ZC002,台灯,,,,2024-01-01,十二元\n" + // unparseable price
		"ZC003,短行资产\n" // short record, defaults apply

	sum, err := im.Import(context.Background(), utf8CSV(input))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Imported)
	assert.Zero(t, sum.Skipped)
	require.Len(t, sum.Messages, 3)
	assert.Contains(t, sum.Messages[2], "十二元")

	a, err := s.GetAssetByCode(context.Background(), "ZC003")
	require.NoError(t, err)
	assert.Equal(t, "短行资产", a.Name)
	assert.Zero(t, a.Price)
	assert.Equal(t, model.StatusIdle, a.Status)
}

func TestImportMessageCap(t *testing.T) {
	s := newTestStore(t)
	im := NewImporter(s, 2)

	input := "资产编号,资产名称\n,a\n,b\n,c\n,d\n,e\n"
	sum, err := im.Import(context.Background(), utf8CSV(input))
	require.NoError(t, err)
	assert.Len(t, sum.Messages, 2)
	assert.Equal(t, 3, sum.Omitted)
}

func TestImportMatchesEmployeeByNameAndDepartment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tech := model.Department{Name: "技术部"}
	require.NoError(t, s.AddDepartment(ctx, &tech))
	admin := model.Department{Name: "行政部"}
	require.NoError(t, s.AddDepartment(ctx, &admin))
	inTech := model.Employee{Name: "张三", DepartmentID: &tech.ID}
	require.NoError(t, s.AddEmployee(ctx, &inTech))
	inAdmin := model.Employee{Name: "张三", DepartmentID: &admin.ID}
	require.NoError(t, s.AddEmployee(ctx, &inAdmin))

	input := "资产编号,资产名称,分类,使用人,部门\n" +
		"ZC001,资产甲,,张三,行政部\n" +
		"ZC002,资产乙,,张三,\n"

	im := NewImporter(s, 10)
	sum, err := im.Import(ctx, utf8CSV(input))
	require.NoError(t, err)
	require.Equal(t, 2, sum.Imported)

	a, err := s.GetAssetByCode(ctx, "ZC001")
	require.NoError(t, err)
	require.NotNil(t, a.UserID)
	assert.Equal(t, inAdmin.ID, *a.UserID)

	// Without a department column the first matching name wins.
	b, err := s.GetAssetByCode(ctx, "ZC002")
	require.NoError(t, err)
	require.NotNil(t, b.UserID)
	assert.Equal(t, inTech.ID, *b.UserID)

	emps, err := s.GetAllEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, emps, 2)
}
