package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-tracker-backend/internal/model"
	"asset-tracker-backend/internal/store"
)

// ListAssets handles GET /api/assets with optional q, category_id and status
// filters, newest first.
func (h *Handler) ListAssets(c *gin.Context) {
	catID, ok := queryID(c, "category_id")
	if !ok {
		return
	}
	assets, err := h.store.SearchAssets(c.Request.Context(), store.AssetQuery{
		Text:       c.Query("q"),
		CategoryID: catID,
		Status:     c.Query("status"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

// GetAsset handles GET /api/assets/:id.
func (h *Handler) GetAsset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	asset, err := h.store.GetAssetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// CreateAsset handles POST /api/assets.
func (h *Handler) CreateAsset(c *gin.Context) {
	var asset model.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if asset.AssetCode == "" || asset.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "资产编号和资产名称为必填项"})
		return
	}
	if asset.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "金额不能为负数"})
		return
	}
	if err := h.store.AddAsset(c.Request.Context(), &asset); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// UpdateAsset handles PUT /api/assets/:id. Field-level changes land in the
// change log as part of the same operation.
func (h *Handler) UpdateAsset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var asset model.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if asset.AssetCode == "" || asset.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "资产编号和资产名称为必填项"})
		return
	}
	if asset.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "金额不能为负数"})
		return
	}
	asset.ID = id
	if err := h.store.UpdateAsset(c.Request.Context(), &asset); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// DeleteAsset handles DELETE /api/assets/:id.
func (h *Handler) DeleteAsset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteAsset(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssetStats handles GET /api/asset-stats.
func (h *Handler) AssetStats(c *gin.Context) {
	count, total, err := h.store.AssetStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count, "totalPrice": total})
}

// NextAssetCode handles GET /api/asset-codes/next, suggesting a code for the
// add form.
func (h *Handler) NextAssetCode(c *gin.Context) {
	code, err := h.store.NextAssetCode(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assetCode": code})
}
