package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-tracker-backend/internal/store"
)

// ListAssetChangeLogs handles GET /api/assets/:id/changelogs.
func (h *Handler) ListAssetChangeLogs(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	logs, err := h.store.GetChangeLogsByAssetID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// SearchChangeLogs handles GET /api/changelogs with optional q, start and end
// (YYYY-MM-DD, end inclusive through end of day).
func (h *Handler) SearchChangeLogs(c *gin.Context) {
	logs, err := h.store.SearchChangeLogs(c.Request.Context(), store.ChangeLogQuery{
		Text:  c.Query("q"),
		Start: c.Query("start"),
		End:   c.Query("end"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
