package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-tracker-backend/internal/model"
	"asset-tracker-backend/internal/store"
)

// ListEmployees handles GET /api/employees with optional q and department_id
// filters.
func (h *Handler) ListEmployees(c *gin.Context) {
	deptID, ok := queryID(c, "department_id")
	if !ok {
		return
	}
	emps, err := h.store.SearchEmployees(c.Request.Context(), store.EmployeeQuery{
		Text:         c.Query("q"),
		DepartmentID: deptID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emps)
}

// CreateEmployee handles POST /api/employees.
func (h *Handler) CreateEmployee(c *gin.Context) {
	var emp model.Employee
	if err := c.ShouldBindJSON(&emp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if emp.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "员工姓名不能为空"})
		return
	}
	if err := h.store.AddEmployee(c.Request.Context(), &emp); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// UpdateEmployee handles PUT /api/employees/:id.
func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var emp model.Employee
	if err := c.ShouldBindJSON(&emp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if emp.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "员工姓名不能为空"})
		return
	}
	emp.ID = id
	if err := h.store.UpdateEmployee(c.Request.Context(), &emp); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

// DeleteEmployee handles DELETE /api/employees/:id. Assets assigned to the
// employee are released and marked idle in the same transaction.
func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteEmployee(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EmployeeAssetCounts handles GET /api/employee-asset-counts: employee id →
// number of assigned assets, computed in one grouped query.
func (h *Handler) EmployeeAssetCounts(c *gin.Context) {
	counts, err := h.store.GetAllEmployeeAssetCounts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
