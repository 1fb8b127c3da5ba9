// Package pipeline orchestrates one analysis run: resolve the area,
// obtain before/after NDVI rasters, classify the change, extract
// patches, and attach impact estimates, imagery, and narrative to the
// stored alert.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/sashabaranov/go-openai"

	"go-canopy/carbon"
	"go-canopy/config"
	"go-canopy/demo"
	"go-canopy/detection"
	"go-canopy/geocode"
	"go-canopy/raster"
	"go-canopy/render"
	"go-canopy/store"
	"go-canopy/storytelling"
	"go-canopy/types"
	"go-canopy/webhook"
)

// Runner executes analyses against a shared store. Safe for
// concurrent runs: each invocation owns its raster buffers.
type Runner struct {
	Store  *store.Store
	Cfg    config.Config
	OpenAI *openai.Client // nil when no API key is configured

	mu     sync.RWMutex
	images map[string]map[string][]byte // alertID -> before/after -> PNG
}

// NewRunner wires a runner. openaiClient may be nil.
func NewRunner(st *store.Store, cfg config.Config, openaiClient *openai.Client) *Runner {
	return &Runner{
		Store:  st,
		Cfg:    cfg,
		OpenAI: openaiClient,
		images: make(map[string]map[string][]byte),
	}
}

// Image returns a stored before/after NDVI PNG for an alert.
func (r *Runner) Image(alertID, which string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.images[alertID][which]
	return data, ok
}

// Run executes the full pipeline and records the outcome on the
// alert. Intended to be dispatched on its own goroutine.
func (r *Runner) Run(alertID string, req types.AnalysisRequest) {
	if err := r.run(alertID, req); err != nil {
		log.Printf("Analysis %s failed: %v", alertID, err)
		r.Store.UpdateAlert(alertID, func(a *types.AlertResponse) {
			a.Status = types.StatusFailed
			a.Error = err.Error()
		})
	}
}

func (r *Runner) run(alertID string, req types.AnalysisRequest) error {
	bbox := req.Bbox
	if len(bbox) == 0 && req.RegionName != "" {
		r.progress(alertID, 5)
		resolved, err := geocode.RegionToBBox(context.Background(), req.RegionName)
		if err != nil {
			return fmt.Errorf("could not geocode region %q: %w", req.RegionName, err)
		}
		bbox = resolved
	}
	if len(bbox) != 4 {
		return fmt.Errorf("no bbox or region_name provided")
	}
	if w, h := math.Abs(bbox[2]-bbox[0]), math.Abs(bbox[3]-bbox[1]); w > r.Cfg.MaxBboxDegrees || h > r.Cfg.MaxBboxDegrees {
		return fmt.Errorf("bbox too large (max %g deg per side)", r.Cfg.MaxBboxDegrees)
	}

	r.Store.UpdateAlert(alertID, func(a *types.AlertResponse) {
		a.Status = types.StatusRunning
		a.Region = bbox
		a.Progress = 10
	})

	if !r.Cfg.DemoMode {
		// Scene acquisition (STAC search, COG band reads, reprojection)
		// is an external collaborator; this build supports demo data only.
		return fmt.Errorf("live imagery acquisition is not configured; set DEMO_MODE=true")
	}

	scene := demo.GenerateScene(bbox)
	r.progress(alertID, 50)

	diff, err := raster.Diff(scene.BeforeNDVI, scene.AfterNDVI)
	if err != nil {
		return err
	}
	severity, err := raster.Classify(diff, raster.Thresholds{
		Low:    r.Cfg.NDVIThresholdLow,
		Medium: r.Cfg.NDVIThresholdMedium,
		High:   r.Cfg.NDVIThresholdHigh,
	})
	if err != nil {
		return err
	}
	r.progress(alertID, 75)

	patches, err := detection.ExtractPatches(severity, diff, scene.Transform, detection.Config{
		MinSizePixels:    r.Cfg.MinSizePixels,
		MinPatchHectares: r.Cfg.MinPatchHectares,
	})
	if err != nil {
		return err
	}
	r.progress(alertID, 85)

	r.storeImages(alertID, scene.BeforeNDVI, scene.AfterNDVI)
	r.progress(alertID, 90)

	impacts := make([]types.PatchImpact, 0, len(patches))
	for i := range patches {
		impact := carbon.EstimatePatchImpact(
			patches[i].AreaHectares, patches[i].Severity, patches[i].NdviDrop,
			patches[i].Centroid[0], carbon.DefaultIntervention)
		patches[i].Impact = &impact
		impacts = append(impacts, impact)
	}
	aggregate := carbon.AggregateImpact(impacts)

	var totalArea float64
	for _, p := range patches {
		totalArea += p.AreaHectares
	}
	totalArea = math.Round(totalArea*100) / 100

	narrative := ""
	if len(patches) > 0 {
		narrative = r.buildNarrative(patches, totalArea, aggregate, bbox)
	}

	alert, _ := r.Store.GetAlert(alertID)
	r.Store.UpdateAlert(alertID, func(a *types.AlertResponse) {
		a.Status = types.StatusCompleted
		a.Progress = 100
		a.Patches = patches
		a.TotalAreaHectares = totalArea
		a.PatchCount = len(patches)
		a.AggregateImpact = &aggregate
		a.Narrative = narrative
	})

	if url := firstNonEmpty(req.WebhookURL, r.Cfg.WebhookURL); url != "" {
		webhook.Fire(types.WebhookPayload{
			AlertID:           alertID,
			Timestamp:         alert.Timestamp,
			Region:            bbox,
			Patches:           patches,
			TotalAreaHectares: totalArea,
			PatchCount:        len(patches),
		}, url)
	}

	log.Printf("Analysis %s completed: %d patches, %.1f ha total", alertID, len(patches), totalArea)
	return nil
}

func (r *Runner) buildNarrative(patches []types.PatchInfo, totalArea float64, aggregate types.AggregateImpact, bbox []float64) string {
	worst := types.SeverityLow
	for _, p := range patches {
		if p.Severity.Rank() > worst.Rank() {
			worst = p.Severity
		}
	}

	// Best case for the comparison sentence: intensive restoration.
	best := make([]types.PatchImpact, 0, len(patches))
	for _, p := range patches {
		best = append(best, carbon.EstimatePatchImpact(
			p.AreaHectares, p.Severity, p.NdviDrop, p.Centroid[0], "intensive_restoration"))
	}
	bestAgg := carbon.AggregateImpact(best)

	narrative := storytelling.GenerateNarrative(storytelling.NarrativeParams{
		PatchCount:        len(patches),
		TotalAreaHectares: totalArea,
		TotalCarbonLoss:   aggregate.TotalCarbonLossTonnes,
		TotalTrees:        aggregate.TotalTreesToReplant,
		AvgRegrowthMonths: aggregate.AvgRegrowthMonths,
		InterventionLabel: carbon.Interventions[carbon.DefaultIntervention].Label,
		WorstSeverity:     string(worst),
		RegionBbox:        bbox,
		BestCaseRegrowth:  bestAgg.AvgRegrowthMonths,
	})

	if r.OpenAI != nil {
		if polished, err := storytelling.PolishNarrative(context.Background(), r.OpenAI, narrative); err == nil {
			return polished
		} else {
			log.Printf("Narrative polish failed, keeping template text: %v", err)
		}
	}
	return narrative
}

func (r *Runner) storeImages(alertID string, before, after *raster.Grid) {
	beforePNG, err := render.EncodePNG(render.NDVIImage(before))
	if err != nil {
		log.Printf("Before-image render failed for %s: %v", alertID, err)
		return
	}
	afterPNG, err := render.EncodePNG(render.NDVIImage(after))
	if err != nil {
		log.Printf("After-image render failed for %s: %v", alertID, err)
		return
	}
	r.mu.Lock()
	r.images[alertID] = map[string][]byte{"before": beforePNG, "after": afterPNG}
	r.mu.Unlock()
}

func (r *Runner) progress(alertID string, pct int) {
	r.Store.UpdateAlert(alertID, func(a *types.AlertResponse) {
		if a.Status == types.StatusPending {
			a.Status = types.StatusRunning
		}
		a.Progress = pct
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
