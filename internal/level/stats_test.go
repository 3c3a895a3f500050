package level

import (
	"testing"

	"github.com/chaitu-2303/Q-A/internal/model"
)

func scored(tier model.Tier, conf float64) model.ScoredQA {
	return model.NewScoredQA(
		model.Candidate{Question: "q", Answer: "a", Type: model.TypeWhat},
		model.LevelResult{Level: tier, Confidence: conf},
	)
}

func TestStatistics(t *testing.T) {
	pairs := []model.ScoredQA{
		scored(model.TierBasic, 0.5),
		scored(model.TierBasic, 1.0),
		scored(model.TierAdvanced, 0.75),
	}

	stats := Statistics(pairs)

	if stats.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", stats.TotalQuestions)
	}
	wantDist := map[model.Tier]int{model.TierBasic: 2, model.TierIntermediate: 0, model.TierAdvanced: 1}
	for tier, want := range wantDist {
		if got := stats.LevelDistribution[tier]; got != want {
			t.Errorf("LevelDistribution[%s] = %d, want %d", tier, got, want)
		}
	}
	wantPct := map[model.Tier]float64{model.TierBasic: 66.7, model.TierIntermediate: 0, model.TierAdvanced: 33.3}
	for tier, want := range wantPct {
		if got := stats.PercentageDistribution[tier]; got != want {
			t.Errorf("PercentageDistribution[%s] = %v, want %v", tier, got, want)
		}
	}
	if stats.AverageConfidence != 0.75 {
		t.Errorf("AverageConfidence = %v, want 0.75", stats.AverageConfidence)
	}

	sum := 0
	for _, c := range stats.LevelDistribution {
		sum += c
	}
	if sum != stats.TotalQuestions {
		t.Errorf("distribution sums to %d, want %d", sum, stats.TotalQuestions)
	}
}

func TestStatisticsEmpty(t *testing.T) {
	stats := Statistics(nil)
	if stats.TotalQuestions != 0 {
		t.Errorf("TotalQuestions = %d, want 0", stats.TotalQuestions)
	}
	if stats.AverageConfidence != 0 {
		t.Errorf("AverageConfidence = %v, want 0", stats.AverageConfidence)
	}
	for _, tier := range model.Tiers {
		if c, ok := stats.LevelDistribution[tier]; !ok || c != 0 {
			t.Errorf("LevelDistribution[%s] = %d (present %v), want 0", tier, c, ok)
		}
		if p, ok := stats.PercentageDistribution[tier]; !ok || p != 0 {
			t.Errorf("PercentageDistribution[%s] = %v (present %v), want 0", tier, p, ok)
		}
	}
}

func TestCategorizePreservesOrder(t *testing.T) {
	a := scored(model.TierIntermediate, 0.4)
	a.Question = "first"
	b := scored(model.TierIntermediate, 0.6)
	b.Question = "second"

	got := Categorize([]model.ScoredQA{a, scored(model.TierBasic, 1), b})
	inter := got[model.TierIntermediate]
	if len(inter) != 2 || inter[0].Question != "first" || inter[1].Question != "second" {
		t.Errorf("intermediate = %+v, want [first second]", inter)
	}
	if len(got[model.TierAdvanced]) != 0 {
		t.Errorf("advanced should be empty, got %d", len(got[model.TierAdvanced]))
	}
}
