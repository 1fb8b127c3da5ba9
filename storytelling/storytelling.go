// Package storytelling builds concise narrative briefings from alert
// data: ready-to-paste text for NGO reports and social media. The
// deterministic template is the source of truth; when an OpenAI key
// is configured the text gets an optional polish pass and falls back
// to the template on any error.
package storytelling

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// NarrativeParams collect everything the briefing mentions.
type NarrativeParams struct {
	PatchCount        int
	TotalAreaHectares float64
	TotalCarbonLoss   float64
	TotalTrees        int
	AvgRegrowthMonths int
	InterventionLabel string
	WorstSeverity     string
	RegionBbox        []float64
	// BestCaseRegrowth, when > 0 and faster than the average, adds the
	// intensive-restoration comparison sentence.
	BestCaseRegrowth int
}

// GenerateNarrative builds a single-paragraph briefing.
func GenerateNarrative(p NarrativeParams) string {
	areaStr := formatArea(p.TotalAreaHectares)
	carbonStr := formatCarbon(p.TotalCarbonLoss)
	recoveryDate := monthsToDate(p.AvgRegrowthMonths)
	recoveryHuman := monthsToHuman(p.AvgRegrowthMonths)

	noun := "patches"
	if p.PatchCount == 1 {
		noun = "patch"
	}

	lat := (p.RegionBbox[1] + p.RegionBbox[3]) / 2
	lon := (p.RegionBbox[0] + p.RegionBbox[2]) / 2
	latDir := "N"
	if lat < 0 {
		latDir = "S"
	}
	lonDir := "E"
	if lon < 0 {
		lonDir = "W"
	}
	location := fmt.Sprintf("%.1f°%s, %.1f°%s", math.Abs(lat), latDir, math.Abs(lon), lonDir)

	parts := []string{
		fmt.Sprintf("Satellite analysis detected %d deforestation %s totaling %s near %s.",
			p.PatchCount, noun, areaStr, location),
		fmt.Sprintf("The estimated carbon loss is %s of CO₂, with the most severe areas classified as %s severity.",
			carbonStr, p.WorstSeverity),
		fmt.Sprintf("Under the %q scenario, an estimated %s trees would need to be planted, with full canopy recovery projected by %s (~%s).",
			p.InterventionLabel, formatCount(p.TotalTrees), recoveryDate, recoveryHuman),
	}

	if p.BestCaseRegrowth > 0 && p.BestCaseRegrowth < p.AvgRegrowthMonths {
		improvement := int(math.Round((1 - float64(p.BestCaseRegrowth)/float64(p.AvgRegrowthMonths)) * 100))
		parts = append(parts, fmt.Sprintf(
			"With intensive restoration, recovery could be accelerated to %s (~%s), a %d%% improvement.",
			monthsToDate(p.BestCaseRegrowth), monthsToHuman(p.BestCaseRegrowth), improvement))
	}

	return strings.Join(parts, " ")
}

// PolishNarrative asks the model to tighten the briefing without
// changing its figures. Errors are returned so the caller can keep
// the deterministic text.
func PolishNarrative(ctx context.Context, client *openai.Client, narrative string) (string, error) {
	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You edit environmental alert briefings. Keep every number and date exactly as given; improve flow only. Reply with the edited paragraph and nothing else.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: narrative,
				},
			},
			MaxTokens:   220,
			N:           1,
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}
	polished := strings.TrimSpace(resp.Choices[0].Message.Content)
	log.Printf("Narrative polished (%d -> %d chars)", len(narrative), len(polished))
	return polished, nil
}

func formatArea(ha float64) string {
	if ha >= 1000 {
		return fmt.Sprintf("%.1fk hectares", ha/1000)
	}
	return fmt.Sprintf("%.0f hectares", ha)
}

func formatCarbon(tonnes float64) string {
	if tonnes >= 1000 {
		return fmt.Sprintf("%.1fk tonnes", tonnes/1000)
	}
	return fmt.Sprintf("%.0f tonnes", tonnes)
}

func monthsToDate(months int) string {
	target := time.Now().UTC().Add(time.Duration(float64(months)*30.4*24) * time.Hour)
	return target.Format("January 2006")
}

func monthsToHuman(months int) string {
	if months >= 24 {
		return fmt.Sprintf("%.1f years", float64(months)/12)
	}
	return fmt.Sprintf("%d months", months)
}

// formatCount renders an integer with thousands separators.
func formatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if n < 0 {
		return "-" + b.String()
	}
	return b.String()
}
