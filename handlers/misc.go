package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-canopy/config"
	"go-canopy/demo"
	"go-canopy/firms"
	"go-canopy/pipeline"
	"go-canopy/store"
	"go-canopy/types"
)

const version = "1.0.0"

// Health reports service liveness and mode.
func Health(c *gin.Context, cfg config.Config) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   version,
		"demo_mode": cfg.DemoMode,
	})
}

// RunDemo kicks off an analysis over the built-in Rondonia scene.
// Same flow as StartAnalysis, with the bbox preselected.
func RunDemo(c *gin.Context, st *store.Store, runner *pipeline.Runner) {
	alert := st.CreateAlert(demo.DemoBBox)
	go runner.Run(alert.AlertID, types.AnalysisRequest{Bbox: demo.DemoBBox})

	c.JSON(http.StatusAccepted, types.AnalysisAccepted{
		AnalysisID: alert.AlertID,
		Status:     "ACCEPTED",
		Message:    "Demo analysis started over Rondonia, Brazil",
	})
}

// Fires proxies recent VIIRS hotspots for a bbox from NASA FIRMS.
// Query params: west, south, east, north (required), days (1-5).
func Fires(c *gin.Context, cfg config.Config) {
	bbox := make([]float64, 0, 4)
	for _, name := range []string{"west", "south", "east", "north"} {
		v, err := strconv.ParseFloat(c.Query(name), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query params west, south, east, north are required numbers"})
			return
		}
		bbox = append(bbox, v)
	}
	if bbox[0] >= bbox[2] || bbox[1] >= bbox[3] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bbox: west < east and south < north required"})
		return
	}

	days := 1
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 5"})
			return
		}
		days = n
	}

	hotspots := firms.FetchHotspots(bbox, days, cfg.NASAFirmsKey)
	if hotspots == nil {
		hotspots = []firms.Hotspot{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(hotspots),
		"hotspots": hotspots,
	})
}
