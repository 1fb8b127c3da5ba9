package storytelling

import (
	"strings"
	"testing"
)

func baseParams() NarrativeParams {
	return NarrativeParams{
		PatchCount:        4,
		TotalAreaHectares: 1250,
		TotalCarbonLoss:   2125.5,
		TotalTrees:        833333,
		AvgRegrowthMonths: 396,
		InterventionLabel: "Natural Regeneration",
		WorstSeverity:     "HIGH",
		RegionBbox:        []float64{-63.0, -10.5, -62.0, -10.0},
		BestCaseRegrowth:  139,
	}
}

func TestGenerateNarrativeMentionsKeyFigures(t *testing.T) {
	text := GenerateNarrative(baseParams())

	for _, want := range []string{
		"4 deforestation patches",
		"1.2k hectares",
		"2.1k tonnes",
		"HIGH severity",
		"833,333 trees",
		"Natural Regeneration",
		"10.2°S, 62.5°W",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("narrative missing %q:\n%s", want, text)
		}
	}
}

func TestGenerateNarrativeBestCaseSentence(t *testing.T) {
	p := baseParams()
	with := GenerateNarrative(p)
	if !strings.Contains(with, "intensive restoration") {
		t.Errorf("expected best-case sentence:\n%s", with)
	}
	// 1 - 139/396 is about 65 percent.
	if !strings.Contains(with, "65% improvement") {
		t.Errorf("expected improvement percentage:\n%s", with)
	}

	p.BestCaseRegrowth = 0
	without := GenerateNarrative(p)
	if strings.Contains(without, "intensive restoration") {
		t.Errorf("best-case sentence should be omitted when not applicable:\n%s", without)
	}
}

func TestGenerateNarrativeSingularPatch(t *testing.T) {
	p := baseParams()
	p.PatchCount = 1
	text := GenerateNarrative(p)
	if !strings.Contains(text, "1 deforestation patch ") {
		t.Errorf("singular noun expected:\n%s", text)
	}
}

func TestMonthsToHuman(t *testing.T) {
	if got := monthsToHuman(18); got != "18 months" {
		t.Errorf("got %q, want 18 months", got)
	}
	if got := monthsToHuman(396); got != "33.0 years" {
		t.Errorf("got %q, want 33.0 years", got)
	}
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{833333, "833,333"},
		{1234567, "1,234,567"},
	}
	for _, tc := range cases {
		if got := formatCount(tc.n); got != tc.want {
			t.Errorf("formatCount(%d): got %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestFormatAreaAndCarbon(t *testing.T) {
	if got := formatArea(950); got != "950 hectares" {
		t.Errorf("got %q", got)
	}
	if got := formatArea(1250); got != "1.2k hectares" {
		t.Errorf("got %q", got)
	}
	if got := formatCarbon(42); got != "42 tonnes" {
		t.Errorf("got %q", got)
	}
	if got := formatCarbon(2125.5); got != "2.1k tonnes" {
		t.Errorf("got %q", got)
	}
}
