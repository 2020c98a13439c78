package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"asset-tracker-backend/internal/csvio"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportAssets handles POST /api/asset-import. The uploaded file is a CSV
// document (UTF-8 with BOM, or legacy GBK); the batch commits as one
// transaction and the summary reports imported/skipped counts with a bounded
// message list.
func (h *Handler) ImportAssets(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少上传文件"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	summary, err := h.importer.Import(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportAssets handles GET /api/asset-export. format=xlsx selects an Excel
// workbook; the default is CSV.
func (h *Handler) ExportAssets(c *gin.Context) {
	assets, err := h.store.GetAllAssets(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	stamp := time.Now().Format("20060102")
	if c.Query("format") == "xlsx" {
		if err := csvio.WriteXLSX(&buf, assets); err != nil {
			h.fail(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=assets_%s.xlsx", stamp))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
		return
	}

	if err := csvio.WriteCSV(&buf, assets); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=assets_%s.csv", stamp))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// DownloadTemplate handles GET /api/asset-template.
func (h *Handler) DownloadTemplate(c *gin.Context) {
	var buf bytes.Buffer
	if err := csvio.WriteTemplate(&buf); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=asset_import_template.csv")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
