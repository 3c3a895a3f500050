// Package level classifies generated questions into difficulty tiers using
// fixed Telugu keyword tables.
package level

import (
	"math"
	"strings"

	"github.com/chaitu-2303/Q-A/internal/model"
)

// Score analyses a question/answer pair and returns its difficulty tier.
// The context sentence is accepted for symmetry with the candidate record
// but does not influence the result.
func Score(question, answer, _ string) model.LevelResult {
	scores := map[model.Tier]int{
		model.TierBasic:        0,
		model.TierIntermediate: 0,
		model.TierAdvanced:     0,
	}

	// 1. Question indicators (2 points each)
	questionLower := strings.ToLower(question)
	found := []string{}
	for _, group := range indicators {
		for _, ind := range group.words {
			if strings.Contains(questionLower, strings.ToLower(ind)) {
				scores[group.tier] += 2
				found = append(found, ind)
			}
		}
	}

	// 2. Answer length band (1 point)
	answerLength := len(strings.Fields(answer))
	for _, band := range lengthBands {
		if band.contains(answerLength) {
			scores[band.tier]++
		}
	}

	// 3. Answer vocabulary (1 point per word)
	for _, group := range complexityWords {
		for _, w := range group.words {
			if strings.Contains(answer, w) {
				scores[group.tier]++
			}
		}
	}

	// 4. Question length (1 point)
	questionLength := len(strings.Fields(question))
	switch {
	case questionLength <= basicMaxWords:
		scores[model.TierBasic]++
	case questionLength <= intermediateMaxWords:
		scores[model.TierIntermediate]++
	default:
		scores[model.TierAdvanced]++
	}

	final, maxScore, total := pick(scores)

	return model.LevelResult{
		Level:      final,
		Confidence: confidence(maxScore, total),
		Scores:     scores,
		Factors: model.Factors{
			QuestionLength:    questionLength,
			AnswerLength:      answerLength,
			ComplexIndicators: found,
		},
	}
}

// pick returns the highest scoring tier, resolving ties by model.Tiers order.
func pick(scores map[model.Tier]int) (model.Tier, int, int) {
	best := model.Tiers[0]
	maxScore := scores[best]
	total := 0
	for _, t := range model.Tiers {
		s := scores[t]
		total += s
		if s > maxScore {
			best, maxScore = t, s
		}
	}
	return best, maxScore, total
}

func confidence(maxScore, total int) float64 {
	if total <= 0 {
		return 0
	}
	c := math.Min(float64(maxScore)/float64(total), 1.0)
	if c < 0 {
		c = 0
	}
	return round(c, 2)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
