package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-canopy/pipeline"
	"go-canopy/store"
	"go-canopy/types"
)

// StartAnalysis accepts an analysis request, registers a PENDING
// alert, and dispatches the pipeline in the background.
func StartAnalysis(c *gin.Context, st *store.Store, runner *pipeline.Runner) {
	var req types.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Bbox) == 0 && req.RegionName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide either bbox or region_name"})
		return
	}
	if len(req.Bbox) > 0 {
		if len(req.Bbox) != 4 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bbox must be [west, south, east, north]"})
			return
		}
		if req.Bbox[0] >= req.Bbox[2] || req.Bbox[1] >= req.Bbox[3] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bbox: west < east and south < north required"})
			return
		}
	}

	bbox := req.Bbox
	if bbox == nil {
		bbox = []float64{0, 0, 0, 0} // resolved from region_name inside the run
	}
	alert := st.CreateAlert(bbox)
	go runner.Run(alert.AlertID, req)

	message := "Analysis started"
	if runner.Cfg.DemoMode {
		message += " (demo mode)"
	}
	c.JSON(http.StatusAccepted, types.AnalysisAccepted{
		AnalysisID: alert.AlertID,
		Status:     "ACCEPTED",
		Message:    message,
	})
}

// AnalysisStatus reports progress for one run.
func AnalysisStatus(c *gin.Context, st *store.Store) {
	id := c.Param("id")
	alert, ok := st.GetAlert(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"analysis_id": id,
		"status":      alert.Status,
		"progress":    alert.Progress,
		"error":       alert.Error,
	})
}
