// Package carbon models carbon loss, replanting effort, and recovery
// timelines per patch, using IPCC Tier 1 biome defaults and typical
// stem densities.
package carbon

import (
	"math"

	"go-canopy/types"
)

// BiomeParams hold per-biome restoration constants.
type BiomeParams struct {
	CarbonDensity      float64 // tC/ha
	TreeDensity        int     // stems/ha
	BaseRegrowthMonths int     // natural regeneration, LOW severity
}

var biomeParams = map[string]BiomeParams{
	"tropical":  {CarbonDensity: 170.0, TreeDensity: 400, BaseRegrowthMonths: 180},
	"temperate": {CarbonDensity: 120.0, TreeDensity: 300, BaseRegrowthMonths: 240},
	"boreal":    {CarbonDensity: 60.0, TreeDensity: 200, BaseRegrowthMonths: 360},
	"savanna":   {CarbonDensity: 30.0, TreeDensity: 80, BaseRegrowthMonths: 120},
}

// Severity multiplies base regrowth time.
var severityRegrowthMult = map[types.Severity]float64{
	types.SeverityLow:    1.0,
	types.SeverityMedium: 1.5,
	types.SeverityHigh:   2.2,
}

// Intervention describes one restoration scenario.
type Intervention struct {
	RegrowthMult float64 // applied to regrowth months, lower is faster
	TreeSurvival float64 // seedling survival rate
	CostPerHa    int     // USD
	Label        string
}

// Interventions are the recognized scenarios.
var Interventions = map[string]Intervention{
	"natural_regeneration": {
		RegrowthMult: 1.0,
		TreeSurvival: 0.6,
		CostPerHa:    0,
		Label:        "Natural Regeneration",
	},
	"assisted_planting": {
		RegrowthMult: 0.6,
		TreeSurvival: 0.75,
		CostPerHa:    1200,
		Label:        "Assisted Planting",
	},
	"intensive_restoration": {
		RegrowthMult: 0.35,
		TreeSurvival: 0.88,
		CostPerHa:    3500,
		Label:        "Intensive Restoration",
	},
}

// DefaultIntervention is the no-cost baseline scenario.
const DefaultIntervention = "natural_regeneration"

// DetectBiome is a latitude-band biome heuristic.
func DetectBiome(lat float64) string {
	absLat := math.Abs(lat)
	switch {
	case absLat < 23.5:
		return "tropical"
	case absLat < 45:
		return "temperate"
	default:
		return "boreal"
	}
}

// EstimatePatchImpact models carbon loss, trees to replant, regrowth
// timeline, and cost for one patch under an intervention scenario.
// Unknown interventions fall back to natural regeneration.
func EstimatePatchImpact(areaHectares float64, severity types.Severity, ndviDrop, lat float64, intervention string) types.PatchImpact {
	biome := DetectBiome(lat)
	params := biomeParams[biome]
	interv, ok := Interventions[intervention]
	if !ok {
		intervention = DefaultIntervention
		interv = Interventions[intervention]
	}

	// Severity fraction approximates how much biomass was lost.
	severityFraction := math.Min(1.0, math.Abs(ndviDrop)/0.8)
	carbonLoss := roundTo(areaHectares*params.CarbonDensity*severityFraction, 1)

	rawTrees := areaHectares * float64(params.TreeDensity)
	treesToReplant := int(rawTrees / interv.TreeSurvival)

	sevMult, ok := severityRegrowthMult[severity]
	if !ok {
		sevMult = 1.5
	}
	regrowth := int(math.Round(float64(params.BaseRegrowthMonths) * sevMult * interv.RegrowthMult))

	cost := int(math.Round(areaHectares * float64(interv.CostPerHa)))

	return types.PatchImpact{
		Biome:             biome,
		CarbonLossTonnes:  carbonLoss,
		TreesToReplant:    treesToReplant,
		RegrowthMonths:    regrowth,
		Intervention:      intervention,
		InterventionLabel: interv.Label,
		CostEstimateUSD:   cost,
	}
}

// AggregateImpact rolls per-patch impact up to alert-level totals.
func AggregateImpact(impacts []types.PatchImpact) types.AggregateImpact {
	var agg types.AggregateImpact
	if len(impacts) == 0 {
		return agg
	}
	var totalCarbon float64
	var totalRegrowth int
	for _, im := range impacts {
		totalCarbon += im.CarbonLossTonnes
		agg.TotalTreesToReplant += im.TreesToReplant
		agg.TotalCostEstimateUSD += im.CostEstimateUSD
		totalRegrowth += im.RegrowthMonths
	}
	agg.TotalCarbonLossTonnes = roundTo(totalCarbon, 1)
	agg.AvgRegrowthMonths = int(math.Round(float64(totalRegrowth) / float64(len(impacts))))
	return agg
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
