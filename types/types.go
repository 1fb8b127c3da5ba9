package types

// Severity is the ordinal classification of NDVI-drop magnitude.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// SeverityFromCode maps a raster severity code (1..3) to its label.
// Code 0 is background and never reaches patch output.
func SeverityFromCode(code uint8) Severity {
	switch code {
	case 2:
		return SeverityMedium
	case 3:
		return SeverityHigh
	default:
		return SeverityLow
	}
}

// Rank orders severities LOW < MEDIUM < HIGH.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// AnalysisStatus tracks the lifecycle of one analysis run.
type AnalysisStatus string

const (
	StatusPending   AnalysisStatus = "PENDING"
	StatusRunning   AnalysisStatus = "RUNNING"
	StatusCompleted AnalysisStatus = "COMPLETED"
	StatusFailed    AnalysisStatus = "FAILED"
)

// AnalysisRequest is the body of POST /api/analyze.
// Either Bbox ([west, south, east, north] in WGS84) or RegionName is required.
type AnalysisRequest struct {
	Bbox        []float64 `json:"bbox,omitempty"`
	RegionName  string    `json:"region_name,omitempty"`
	BeforeStart string    `json:"before_start,omitempty"`
	BeforeEnd   string    `json:"before_end,omitempty"`
	AfterStart  string    `json:"after_start,omitempty"`
	AfterEnd    string    `json:"after_end,omitempty"`
	WebhookURL  string    `json:"webhook_url,omitempty"`
}

// PatchImpact holds per-patch carbon and restoration estimates.
type PatchImpact struct {
	Biome             string  `json:"biome"`
	CarbonLossTonnes  float64 `json:"carbon_loss_tonnes"`
	TreesToReplant    int     `json:"trees_to_replant"`
	RegrowthMonths    int     `json:"regrowth_months"`
	Intervention      string  `json:"intervention"`
	InterventionLabel string  `json:"intervention_label"`
	CostEstimateUSD   int     `json:"cost_estimate_usd"`
}

// PatchInfo is one detected deforestation patch. Coordinates follow the
// GeoJSON Polygon convention: [[[lng, lat], ...]] with a closed exterior
// ring and no holes. Centroid is [lat, lng].
type PatchInfo struct {
	ID            string         `json:"id"`
	Coordinates   [][][]float64  `json:"coordinates"`
	Centroid      []float64      `json:"centroid"`
	AreaHectares  float64        `json:"area_hectares"`
	Confidence    float64        `json:"confidence"`
	Severity      Severity       `json:"severity"`
	NdviDrop      float64        `json:"ndvi_drop"`
	Impact        *PatchImpact   `json:"impact,omitempty"`
}

// AggregateImpact is the alert-level rollup of per-patch impact.
type AggregateImpact struct {
	TotalCarbonLossTonnes float64 `json:"total_carbon_loss_tonnes"`
	TotalTreesToReplant   int     `json:"total_trees_to_replant"`
	AvgRegrowthMonths     int     `json:"avg_regrowth_months"`
	TotalCostEstimateUSD  int     `json:"total_cost_estimate_usd"`
}

// AlertResponse is the stored state of one analysis alert.
type AlertResponse struct {
	AlertID            string           `json:"alert_id"`
	Timestamp          string           `json:"timestamp"`
	Region             []float64        `json:"region"`
	Status             AnalysisStatus   `json:"status"`
	Progress           int              `json:"progress"`
	Patches            []PatchInfo      `json:"patches"`
	TotalAreaHectares  float64          `json:"total_area_hectares"`
	PatchCount         int              `json:"patch_count"`
	Error              string           `json:"error,omitempty"`
	AggregateImpact    *AggregateImpact `json:"aggregate_impact,omitempty"`
	Narrative          string           `json:"narrative,omitempty"`
}

// AlertSummary is the trimmed listing row for GET /api/alerts.
type AlertSummary struct {
	AlertID           string         `json:"alert_id"`
	Timestamp         string         `json:"timestamp"`
	Status            AnalysisStatus `json:"status"`
	PatchCount        int            `json:"patch_count"`
	TotalAreaHectares float64        `json:"total_area_hectares"`
	Region            []float64      `json:"region"`
}

// AnalysisAccepted acknowledges an accepted analysis request.
type AnalysisAccepted struct {
	AnalysisID string `json:"analysis_id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// RegionCreate is the body of POST /api/regions.
type RegionCreate struct {
	Name        string    `json:"name" binding:"required"`
	Bbox        []float64 `json:"bbox" binding:"required"`
	Description string    `json:"description,omitempty"`
}

// RegionResponse is a saved watched region.
type RegionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Bbox        []float64 `json:"bbox"`
	Description string    `json:"description,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

// InterventionRequest selects a restoration scenario for re-modeling.
type InterventionRequest struct {
	Intervention string `json:"intervention" binding:"required"`
}

// InterventionResponse carries re-modeled patches under a scenario.
type InterventionResponse struct {
	AlertID           string             `json:"alert_id"`
	Intervention      string             `json:"intervention"`
	InterventionLabel string             `json:"intervention_label"`
	Patches           []PatchInfo        `json:"patches"`
	AggregateImpact   AggregateImpact    `json:"aggregate_impact"`
	Narrative         string             `json:"narrative"`
	DeltaVsNatural    map[string]float64 `json:"delta_vs_natural,omitempty"`
}

// WebhookPayload is POSTed to the configured webhook when a run completes.
type WebhookPayload struct {
	AlertID           string      `json:"alert_id"`
	Timestamp         string      `json:"timestamp"`
	Region            []float64   `json:"region"`
	Patches           []PatchInfo `json:"patches"`
	TotalAreaHectares float64     `json:"total_area_hectares"`
	PatchCount        int         `json:"patch_count"`
}
