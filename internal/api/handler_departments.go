package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-tracker-backend/internal/model"
)

// ListDepartments handles GET /api/departments.
func (h *Handler) ListDepartments(c *gin.Context) {
	depts, err := h.store.GetAllDepartments(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, depts)
}

// CreateDepartment handles POST /api/departments.
func (h *Handler) CreateDepartment(c *gin.Context) {
	var dept model.Department
	if err := c.ShouldBindJSON(&dept); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if dept.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "部门名称不能为空"})
		return
	}
	if err := h.store.AddDepartment(c.Request.Context(), &dept); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dept)
}

// UpdateDepartment handles PUT /api/departments/:id.
func (h *Handler) UpdateDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var dept model.Department
	if err := c.ShouldBindJSON(&dept); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if dept.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "部门名称不能为空"})
		return
	}
	dept.ID = id
	if err := h.store.UpdateDepartment(c.Request.Context(), &dept); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dept)
}

// DeleteDepartment handles DELETE /api/departments/:id. A department that
// still has employees is rejected with a conflict.
func (h *Handler) DeleteDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteDepartment(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
