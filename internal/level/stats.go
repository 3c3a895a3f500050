package level

import "github.com/chaitu-2303/Q-A/internal/model"

// Categorize groups scored pairs by level. Every tier is present in the
// result, possibly with an empty slice; order within a tier is preserved.
func Categorize(pairs []model.ScoredQA) map[model.Tier][]model.ScoredQA {
	out := make(map[model.Tier][]model.ScoredQA, len(model.Tiers))
	for _, t := range model.Tiers {
		out[t] = []model.ScoredQA{}
	}
	for _, p := range pairs {
		out[p.Level] = append(out[p.Level], p)
	}
	return out
}

// Statistics computes the level distribution and average confidence of pairs.
func Statistics(pairs []model.ScoredQA) model.LevelStatistics {
	categorized := Categorize(pairs)
	total := len(pairs)

	stats := model.LevelStatistics{
		TotalQuestions:         total,
		LevelDistribution:      make(map[model.Tier]int, len(model.Tiers)),
		PercentageDistribution: make(map[model.Tier]float64, len(model.Tiers)),
	}

	for _, t := range model.Tiers {
		count := len(categorized[t])
		stats.LevelDistribution[t] = count
		if total > 0 {
			stats.PercentageDistribution[t] = round(float64(count)/float64(total)*100, 1)
		} else {
			stats.PercentageDistribution[t] = 0
		}
	}

	if total > 0 {
		var sum float64
		for _, p := range pairs {
			sum += p.Confidence
		}
		stats.AverageConfidence = round(sum/float64(total), 2)
	}

	return stats
}
