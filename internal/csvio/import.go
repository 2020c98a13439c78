package csvio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"asset-tracker-backend/internal/model"
	"asset-tracker-backend/internal/store"
)

// headerToken identifies a header record on import.
const headerToken = "资产编号"

// Summary is the outcome of one import batch. Imported and Skipped are
// disjoint: skips are rows whose asset code already existed. Messages is
// capped; rows beyond the cap only bump Omitted.
type Summary struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Messages []string `json:"messages"`
	Omitted  int      `json:"omitted"`
}

func (sum *Summary) addMessage(max int, format string, args ...any) {
	if len(sum.Messages) < max {
		sum.Messages = append(sum.Messages, fmt.Sprintf(format, args...))
		return
	}
	sum.Omitted++
}

// Importer runs the bulk import pipeline against a Store.
type Importer struct {
	store       store.Store
	maxMessages int
}

// NewImporter creates an importer. maxMessages caps the detail list in the
// returned summary.
func NewImporter(s store.Store, maxMessages int) *Importer {
	if maxMessages <= 0 {
		maxMessages = 10
	}
	return &Importer{store: s, maxMessages: maxMessages}
}

// batchCaches hold the lookup data preloaded once per batch. Entities created
// during the batch are appended so later records reuse them without another
// query.
type batchCaches struct {
	categories  map[string]int64
	departments map[string]int64
	employees   []model.Employee
}

// Import reads delimited records from r and inserts the new assets, creating
// referenced categories, departments and employees on demand. The whole batch
// runs in one transaction: skips and per-row errors do not abort it, only an
// engine failure rolls everything back.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*Summary, error) {
	cr := csv.NewReader(DecodeReader(r))
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	sum := &Summary{}
	err := im.store.Transaction(ctx, func(tx store.Store) error {
		caches, err := preloadCaches(ctx, tx)
		if err != nil {
			return err
		}

		first := true
		row := 0
		for {
			record, err := cr.Read()
			if err == io.EOF {
				break
			}
			row++
			if err != nil {
				sum.addMessage(im.maxMessages, "第%d行: 解析失败: %v", row, err)
				continue
			}
			if first {
				first = false
				if strings.Contains(record[0], headerToken) {
					continue
				}
			}
			if err := im.importRecord(ctx, tx, record, row, caches, sum); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import failed: %w", err)
	}
	return sum, nil
}

func preloadCaches(ctx context.Context, tx store.Store) (*batchCaches, error) {
	cats, err := tx.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	depts, err := tx.GetAllDepartments(ctx)
	if err != nil {
		return nil, err
	}
	emps, err := tx.GetAllEmployees(ctx)
	if err != nil {
		return nil, err
	}
	caches := &batchCaches{
		categories:  make(map[string]int64, len(cats)),
		departments: make(map[string]int64, len(depts)),
		employees:   emps,
	}
	for _, c := range cats {
		caches.categories[c.Name] = c.ID
	}
	for _, d := range depts {
		caches.departments[d.Name] = d.ID
	}
	return caches, nil
}

// importRecord handles a single record. Row-level problems end up in the
// summary and return nil; a non-nil return aborts the batch.
func (im *Importer) importRecord(ctx context.Context, tx store.Store, record []string, row int, caches *batchCaches, sum *Summary) error {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	code, name := field(0), field(1)
	if code == "" || name == "" {
		sum.addMessage(im.maxMessages, "第%d行: 资产编号或名称为空，跳过", row)
		return nil
	}

	if _, err := tx.GetAssetByCode(ctx, code); err == nil {
		sum.Skipped++
		sum.addMessage(im.maxMessages, "资产编号 %s 已存在，跳过", code)
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	categoryID := im.resolveCategory(ctx, tx, field(2), row, caches, sum)
	userID := im.resolveUser(ctx, tx, field(3), field(4), row, caches, sum)

	price := 0.0
	if raw := field(6); raw != "" {
		var err error
		price, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			sum.addMessage(im.maxMessages, "第%d行: 金额 %q 无法解析，跳过", row, raw)
			return nil
		}
	}

	status := field(8)
	if status == "" {
		status = model.StatusInUse
	}

	asset := model.Asset{
		AssetCode:    code,
		Name:         name,
		CategoryID:   categoryID,
		UserID:       userID,
		PurchaseDate: field(5),
		Price:        price,
		Location:     field(7),
		Status:       status,
		Remark:       field(9),
	}
	if err := tx.AddAsset(ctx, &asset); err != nil {
		sum.addMessage(im.maxMessages, "添加资产 %s 失败: %v", code, err)
		return nil
	}
	sum.Imported++
	return nil
}

func (im *Importer) resolveCategory(ctx context.Context, tx store.Store, name string, row int, caches *batchCaches, sum *Summary) *int64 {
	if name == "" {
		return nil
	}
	if id, ok := caches.categories[name]; ok {
		return &id
	}
	cat := model.Category{Name: name}
	if err := tx.AddCategory(ctx, &cat); err != nil {
		sum.addMessage(im.maxMessages, "第%d行: 创建分类 %s 失败: %v", row, name, err)
		return nil
	}
	caches.categories[name] = cat.ID
	return &cat.ID
}

func (im *Importer) resolveUser(ctx context.Context, tx store.Store, userName, deptName string, row int, caches *batchCaches, sum *Summary) *int64 {
	if userName == "" {
		return nil
	}

	var deptID *int64
	if deptName != "" {
		if id, ok := caches.departments[deptName]; ok {
			deptID = &id
		} else {
			dept := model.Department{Name: deptName}
			if err := tx.AddDepartment(ctx, &dept); err != nil {
				sum.addMessage(im.maxMessages, "第%d行: 创建部门 %s 失败: %v", row, deptName, err)
			} else {
				caches.departments[deptName] = dept.ID
				deptID = &dept.ID
			}
		}
	}

	// Without a department the first employee with a matching name wins.
	for i := range caches.employees {
		emp := &caches.employees[i]
		if emp.Name != userName {
			continue
		}
		if deptID == nil {
			return &emp.ID
		}
		if emp.DepartmentID != nil && *emp.DepartmentID == *deptID {
			return &emp.ID
		}
	}

	emp := model.Employee{Name: userName, DepartmentID: deptID}
	if err := tx.AddEmployee(ctx, &emp); err != nil {
		sum.addMessage(im.maxMessages, "第%d行: 创建员工 %s 失败: %v", row, userName, err)
		return nil
	}
	caches.employees = append(caches.employees, emp)
	return &emp.ID
}
