package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-canopy/store"
	"go-canopy/types"
)

// CreateRegion saves a watched region for the cron monitor.
func CreateRegion(c *gin.Context, st *store.Store) {
	var req types.RegionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Bbox) != 4 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bbox must be [west, south, east, north]"})
		return
	}
	if req.Bbox[0] >= req.Bbox[2] || req.Bbox[1] >= req.Bbox[3] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bbox: west < east and south < north required"})
		return
	}

	region := st.CreateRegion(req.Name, req.Bbox, req.Description)
	c.JSON(http.StatusCreated, region)
}

// ListRegions returns every watched region.
func ListRegions(c *gin.Context, st *store.Store) {
	c.JSON(http.StatusOK, st.ListRegions())
}

// GetRegion returns one watched region.
func GetRegion(c *gin.Context, st *store.Store) {
	region, ok := st.GetRegion(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Region not found"})
		return
	}
	c.JSON(http.StatusOK, region)
}
