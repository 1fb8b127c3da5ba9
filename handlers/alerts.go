package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"go-canopy/carbon"
	"go-canopy/pipeline"
	"go-canopy/render"
	"go-canopy/store"
	"go-canopy/storytelling"
	"go-canopy/types"
)

// ListAlerts returns summary rows for every alert.
func ListAlerts(c *gin.Context, st *store.Store) {
	alerts := st.ListAlerts()
	out := make([]types.AlertSummary, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, types.AlertSummary{
			AlertID:           a.AlertID,
			Timestamp:         a.Timestamp,
			Status:            a.Status,
			PatchCount:        a.PatchCount,
			TotalAreaHectares: a.TotalAreaHectares,
			Region:            a.Region,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetAlert returns the full alert record.
func GetAlert(c *gin.Context, st *store.Store) {
	alert, ok := st.GetAlert(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}
	c.JSON(http.StatusOK, alert)
}

// GetAlertGeoJSON renders the alert's patches as a FeatureCollection.
func GetAlertGeoJSON(c *gin.Context, st *store.Store) {
	alert, ok := st.GetAlert(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}

	features := make([]types.GeoJSONFeature, 0, len(alert.Patches))
	for _, patch := range alert.Patches {
		features = append(features, patch.ToFeature())
	}

	props := map[string]any{
		"alert_id":            alert.AlertID,
		"timestamp":           alert.Timestamp,
		"total_area_hectares": alert.TotalAreaHectares,
		"patch_count":         alert.PatchCount,
	}
	if alert.AggregateImpact != nil {
		props["aggregate_impact"] = *alert.AggregateImpact
	}
	if alert.Narrative != "" {
		props["narrative"] = alert.Narrative
	}

	c.JSON(http.StatusOK, types.GeoJSONFeatureCollection{
		Type:       "FeatureCollection",
		Features:   features,
		Properties: props,
	})
}

// RunIntervention recomputes impact estimates under a different
// restoration scenario and rebuilds the narrative.
func RunIntervention(c *gin.Context, st *store.Store) {
	alert, ok := st.GetAlert(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}
	if len(alert.Patches) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No patches to evaluate"})
		return
	}

	var req types.InterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	scenario, ok := carbon.Interventions[req.Intervention]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid intervention. Choose from: natural_regeneration, assisted_planting, intensive_restoration",
		})
		return
	}

	updated := make([]types.PatchInfo, 0, len(alert.Patches))
	impacts := make([]types.PatchImpact, 0, len(alert.Patches))
	naturalImpacts := make([]types.PatchImpact, 0, len(alert.Patches))
	bestImpacts := make([]types.PatchImpact, 0, len(alert.Patches))
	worst := types.SeverityLow
	for _, p := range alert.Patches {
		impact := carbon.EstimatePatchImpact(p.AreaHectares, p.Severity, p.NdviDrop, p.Centroid[0], req.Intervention)
		p.Impact = &impact
		updated = append(updated, p)
		impacts = append(impacts, impact)
		naturalImpacts = append(naturalImpacts, carbon.EstimatePatchImpact(
			p.AreaHectares, p.Severity, p.NdviDrop, p.Centroid[0], carbon.DefaultIntervention))
		bestImpacts = append(bestImpacts, carbon.EstimatePatchImpact(
			p.AreaHectares, p.Severity, p.NdviDrop, p.Centroid[0], "intensive_restoration"))
		if p.Severity.Rank() > worst.Rank() {
			worst = p.Severity
		}
	}

	agg := carbon.AggregateImpact(impacts)
	natAgg := carbon.AggregateImpact(naturalImpacts)
	bestAgg := carbon.AggregateImpact(bestImpacts)

	var delta map[string]float64
	if req.Intervention != carbon.DefaultIntervention && natAgg.AvgRegrowthMonths > 0 {
		improvementPct := (1 - float64(agg.AvgRegrowthMonths)/float64(natAgg.AvgRegrowthMonths)) * 100
		delta = map[string]float64{
			"regrowth_months_saved":    float64(natAgg.AvgRegrowthMonths - agg.AvgRegrowthMonths),
			"regrowth_improvement_pct": float64(int(improvementPct + 0.5)),
			"additional_cost_usd":      float64(agg.TotalCostEstimateUSD - natAgg.TotalCostEstimateUSD),
		}
	}

	bestCase := bestAgg.AvgRegrowthMonths
	if req.Intervention == "intensive_restoration" {
		bestCase = 0
	}
	narrative := storytelling.GenerateNarrative(storytelling.NarrativeParams{
		PatchCount:        len(alert.Patches),
		TotalAreaHectares: alert.TotalAreaHectares,
		TotalCarbonLoss:   agg.TotalCarbonLossTonnes,
		TotalTrees:        agg.TotalTreesToReplant,
		AvgRegrowthMonths: agg.AvgRegrowthMonths,
		InterventionLabel: scenario.Label,
		WorstSeverity:     string(worst),
		RegionBbox:        alert.Region,
		BestCaseRegrowth:  bestCase,
	})

	c.JSON(http.StatusOK, types.InterventionResponse{
		AlertID:           alert.AlertID,
		Intervention:      req.Intervention,
		InterventionLabel: scenario.Label,
		Patches:           updated,
		AggregateImpact:   agg,
		Narrative:         narrative,
		DeltaVsNatural:    delta,
	})
}

// AlertImage serves the stored before/after NDVI rendering. PNG by
// default, WebP with ?format=webp.
func AlertImage(c *gin.Context, runner *pipeline.Runner, which string) {
	data, ok := runner.Image(c.Param("id"), which)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	if c.Query("format") == "webp" {
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("decode image: %v", err)})
			return
		}
		webpData, err := render.EncodeWebP(img)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("encode webp: %v", err)})
			return
		}
		c.Data(http.StatusOK, "image/webp", webpData)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}
