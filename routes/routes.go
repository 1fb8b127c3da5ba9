package routes

import (
	"github.com/gin-gonic/gin"

	"go-canopy/config"
	"go-canopy/handlers"
	"go-canopy/pipeline"
	"go-canopy/store"
)

func SetupRouter(cfg config.Config, st *store.Store, runner *pipeline.Runner) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Canopy!",
		})
	})

	// api routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			handlers.Health(c, cfg)
		})

		api.POST("/analyze", func(c *gin.Context) {
			handlers.StartAnalysis(c, st, runner)
		})
		api.GET("/analyze/:id/status", func(c *gin.Context) {
			handlers.AnalysisStatus(c, st)
		})
		api.GET("/demo", func(c *gin.Context) {
			handlers.RunDemo(c, st, runner)
		})

		api.GET("/alerts", func(c *gin.Context) {
			handlers.ListAlerts(c, st)
		})
		api.GET("/alerts/:id", func(c *gin.Context) {
			handlers.GetAlert(c, st)
		})
		api.GET("/alerts/:id/geojson", func(c *gin.Context) {
			handlers.GetAlertGeoJSON(c, st)
		})
		api.POST("/alerts/:id/intervention", func(c *gin.Context) {
			handlers.RunIntervention(c, st)
		})
		api.GET("/alerts/:id/before.png", func(c *gin.Context) {
			handlers.AlertImage(c, runner, "before")
		})
		api.GET("/alerts/:id/after.png", func(c *gin.Context) {
			handlers.AlertImage(c, runner, "after")
		})

		api.POST("/regions", func(c *gin.Context) {
			handlers.CreateRegion(c, st)
		})
		api.GET("/regions", func(c *gin.Context) {
			handlers.ListRegions(c, st)
		})
		api.GET("/regions/:id", func(c *gin.Context) {
			handlers.GetRegion(c, st)
		})

		api.GET("/fires", func(c *gin.Context) {
			handlers.Fires(c, cfg)
		})
	}

	return r
}
