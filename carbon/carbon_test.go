package carbon

import (
	"testing"

	"go-canopy/types"
)

func TestDetectBiome(t *testing.T) {
	cases := []struct {
		lat  float64
		want string
	}{
		{-10.2, "tropical"},
		{0, "tropical"},
		{23.4, "tropical"},
		{35, "temperate"},
		{-40, "temperate"},
		{50, "boreal"},
		{-60, "boreal"},
	}
	for _, tc := range cases {
		if got := DetectBiome(tc.lat); got != tc.want {
			t.Errorf("DetectBiome(%g): got %s, want %s", tc.lat, got, tc.want)
		}
	}
}

func TestEstimatePatchImpactTropical(t *testing.T) {
	// 10 ha, full severity fraction (drop 0.8), natural regeneration.
	im := EstimatePatchImpact(10, types.SeverityHigh, -0.8, -10.2, "natural_regeneration")

	if im.Biome != "tropical" {
		t.Errorf("biome: got %s, want tropical", im.Biome)
	}
	if im.CarbonLossTonnes != 1700.0 {
		t.Errorf("carbon loss: got %g, want 1700 (10 ha * 170 tC/ha)", im.CarbonLossTonnes)
	}
	// 10 ha * 400 stems / 0.6 survival.
	if im.TreesToReplant != 6666 {
		t.Errorf("trees: got %d, want 6666", im.TreesToReplant)
	}
	// 180 base * 2.2 HIGH * 1.0 natural.
	if im.RegrowthMonths != 396 {
		t.Errorf("regrowth: got %d months, want 396", im.RegrowthMonths)
	}
	if im.CostEstimateUSD != 0 {
		t.Errorf("cost: got %d, want 0 for natural regeneration", im.CostEstimateUSD)
	}
}

func TestEstimatePatchImpactInterventionSpeedsRecovery(t *testing.T) {
	natural := EstimatePatchImpact(5, types.SeverityMedium, -0.5, -10, "natural_regeneration")
	intensive := EstimatePatchImpact(5, types.SeverityMedium, -0.5, -10, "intensive_restoration")

	if intensive.RegrowthMonths >= natural.RegrowthMonths {
		t.Errorf("intensive regrowth %d should beat natural %d",
			intensive.RegrowthMonths, natural.RegrowthMonths)
	}
	if intensive.CostEstimateUSD <= natural.CostEstimateUSD {
		t.Errorf("intensive cost %d should exceed natural %d",
			intensive.CostEstimateUSD, natural.CostEstimateUSD)
	}
	// Higher survival means fewer seedlings.
	if intensive.TreesToReplant >= natural.TreesToReplant {
		t.Errorf("intensive trees %d should be below natural %d",
			intensive.TreesToReplant, natural.TreesToReplant)
	}
}

func TestEstimatePatchImpactSeverityFractionCaps(t *testing.T) {
	shallow := EstimatePatchImpact(1, types.SeverityLow, -0.2, 0, "natural_regeneration")
	deep := EstimatePatchImpact(1, types.SeverityLow, -0.8, 0, "natural_regeneration")
	deeper := EstimatePatchImpact(1, types.SeverityLow, -1.5, 0, "natural_regeneration")

	if shallow.CarbonLossTonnes >= deep.CarbonLossTonnes {
		t.Errorf("carbon loss should grow with drop: %g vs %g",
			shallow.CarbonLossTonnes, deep.CarbonLossTonnes)
	}
	if deep.CarbonLossTonnes != deeper.CarbonLossTonnes {
		t.Errorf("severity fraction must cap at 1: %g vs %g",
			deep.CarbonLossTonnes, deeper.CarbonLossTonnes)
	}
}

func TestEstimatePatchImpactUnknownIntervention(t *testing.T) {
	im := EstimatePatchImpact(1, types.SeverityLow, -0.3, 0, "terraforming")
	if im.Intervention != DefaultIntervention {
		t.Errorf("unknown intervention: got %s, want fallback to %s",
			im.Intervention, DefaultIntervention)
	}
}

func TestAggregateImpact(t *testing.T) {
	impacts := []types.PatchImpact{
		{CarbonLossTonnes: 100.5, TreesToReplant: 1000, RegrowthMonths: 200, CostEstimateUSD: 500},
		{CarbonLossTonnes: 50.2, TreesToReplant: 400, RegrowthMonths: 100, CostEstimateUSD: 300},
	}
	agg := AggregateImpact(impacts)

	if agg.TotalCarbonLossTonnes != 150.7 {
		t.Errorf("total carbon: got %g, want 150.7", agg.TotalCarbonLossTonnes)
	}
	if agg.TotalTreesToReplant != 1400 {
		t.Errorf("total trees: got %d, want 1400", agg.TotalTreesToReplant)
	}
	if agg.AvgRegrowthMonths != 150 {
		t.Errorf("avg regrowth: got %d, want 150", agg.AvgRegrowthMonths)
	}
	if agg.TotalCostEstimateUSD != 800 {
		t.Errorf("total cost: got %d, want 800", agg.TotalCostEstimateUSD)
	}
}

func TestAggregateImpactEmpty(t *testing.T) {
	agg := AggregateImpact(nil)
	if agg.TotalCarbonLossTonnes != 0 || agg.AvgRegrowthMonths != 0 {
		t.Errorf("empty aggregate should be zero, got %+v", agg)
	}
}
