package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// RuleMatch is the outcome of SelectLightingRule.
type RuleMatch struct {
	Rule  models.LightingRule
	Found bool
	// Candidates is how many rules matched at all.
	Candidates int
	// Ambiguous is set when another rule tied with the winner on specificity;
	// the earlier one in the input wins.
	Ambiguous bool
}

// ruleSpecificity ranks customer-specific above global, then type-specific
// above rules for every cabinet type.
func ruleSpecificity(r models.LightingRule) int {
	score := 0
	if !r.IsGlobal && r.Customer != nil {
		score += 2
	}
	if r.CabinetType != nil {
		score++
	}
	return score
}

func ruleApplies(r models.LightingRule, material, cabinetType int, project models.Project) bool {
	if !r.IsActive || r.CabinetMaterial != material {
		return false
	}
	if r.CabinetType != nil && *r.CabinetType != cabinetType {
		return false
	}
	if r.BudgetTier != project.BudgetTier {
		return false
	}
	return r.IsGlobal || (r.Customer != nil && *r.Customer == project.Customer)
}

// SelectLightingRule picks the most specific active rule for a material,
// cabinet type and project.
func SelectLightingRule(rules []models.LightingRule, material, cabinetType int, project models.Project) RuleMatch {
	var matched []models.LightingRule
	for _, r := range rules {
		if ruleApplies(r, material, cabinetType, project) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return RuleMatch{}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return ruleSpecificity(matched[i]) > ruleSpecificity(matched[j])
	})

	return RuleMatch{
		Rule:       matched[0],
		Found:      true,
		Candidates: len(matched),
		Ambiguous:  len(matched) > 1 && ruleSpecificity(matched[0]) == ruleSpecificity(matched[1]),
	}
}

// LightingSummary totals the active lighting items of a project.
type LightingSummary struct {
	TotalLEDCost   float64
	TotalSpotCost  float64
	GrandTotal     float64
	SpotLightCount int
	ItemCount      int
}

// AggregateLightingCosts sums the stored per-item costs of active items.
// Item costs are taken as-is; nothing is recomputed from rules.
func AggregateLightingCosts(items []models.LightingItem) LightingSummary {
	led, spot, grand := decimal.Zero, decimal.Zero, decimal.Zero
	var summary LightingSummary
	for _, it := range items {
		if !it.IsActive {
			continue
		}
		led = led.
			Add(decimal.NewFromFloat(it.LEDUnderWallCost)).
			Add(decimal.NewFromFloat(it.LEDWorkTopCost)).
			Add(decimal.NewFromFloat(it.LEDSkirtingCost))
		spot = spot.Add(decimal.NewFromFloat(it.SpotLightsCost))
		grand = grand.Add(decimal.NewFromFloat(it.TotalCost))
		summary.SpotLightCount += it.SpotLightCount
		summary.ItemCount++
	}
	summary.TotalLEDCost = led.Round(2).InexactFloat64()
	summary.TotalSpotCost = spot.Round(2).InexactFloat64()
	summary.GrandTotal = grand.Round(2).InexactFloat64()
	return summary
}
