package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"asset-tracker-backend/config"
	"asset-tracker-backend/internal/csvio"
	"asset-tracker-backend/internal/mw"
	"asset-tracker-backend/internal/store"
)

// NewRouter creates and configures a new Gin router over the store.
func NewRouter(s store.Store, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	importer := csvio.NewImporter(s, cfg.Import.MaxMessages)
	handler := NewHandler(s, importer)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/categories", caching, handler.ListCategories)
		api.POST("/categories", handler.CreateCategory)
		api.PUT("/categories/:id", handler.UpdateCategory)
		api.DELETE("/categories/:id", handler.DeleteCategory)

		api.GET("/departments", caching, handler.ListDepartments)
		api.POST("/departments", handler.CreateDepartment)
		api.PUT("/departments/:id", handler.UpdateDepartment)
		api.DELETE("/departments/:id", handler.DeleteDepartment)

		api.GET("/employees", handler.ListEmployees)
		api.POST("/employees", handler.CreateEmployee)
		api.PUT("/employees/:id", handler.UpdateEmployee)
		api.DELETE("/employees/:id", handler.DeleteEmployee)
		api.GET("/employee-asset-counts", handler.EmployeeAssetCounts)

		api.GET("/assets", handler.ListAssets)
		api.POST("/assets", handler.CreateAsset)
		api.GET("/assets/:id", handler.GetAsset)
		api.PUT("/assets/:id", handler.UpdateAsset)
		api.DELETE("/assets/:id", handler.DeleteAsset)
		api.GET("/assets/:id/changelogs", handler.ListAssetChangeLogs)

		api.GET("/asset-stats", handler.AssetStats)
		api.GET("/asset-codes/next", handler.NextAssetCode)

		api.POST("/asset-import", handler.ImportAssets)
		api.GET("/asset-export", handler.ExportAssets)
		api.GET("/asset-template", caching, handler.DownloadTemplate)

		api.GET("/changelogs", handler.SearchChangeLogs)
	}

	return r
}
