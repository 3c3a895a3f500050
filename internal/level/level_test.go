package level

import (
	"reflect"
	"strings"
	"testing"

	"github.com/chaitu-2303/Q-A/internal/model"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		question   string
		answer     string
		wantLevel  model.Tier
		wantConf   float64
		wantScores map[model.Tier]int
		wantInds   []string
	}{
		{
			name:       "basic where question",
			question:   "రాముడు ఎక్కడ వెళ్ళాడు?",
			answer:     "హైదరాబాద్ నగరం",
			wantLevel:  model.TierBasic,
			wantConf:   1.0,
			wantScores: map[model.Tier]int{model.TierBasic: 4, model.TierIntermediate: 0, model.TierAdvanced: 0},
			wantInds:   []string{"ఎక్కడ"},
		},
		{
			name:       "tie between basic and intermediate goes to basic",
			question:   "one two three four five six",
			answer:     "short answer",
			wantLevel:  model.TierBasic,
			wantConf:   0.5,
			wantScores: map[model.Tier]int{model.TierBasic: 1, model.TierIntermediate: 1, model.TierAdvanced: 0},
			wantInds:   []string{},
		},
		{
			name:       "tie between basic and advanced goes to basic",
			question:   "w1 w2 w3 w4 w5 w6 w7 w8 w9 w10 w11",
			answer:     "short answer",
			wantLevel:  model.TierBasic,
			wantConf:   0.5,
			wantScores: map[model.Tier]int{model.TierBasic: 1, model.TierIntermediate: 0, model.TierAdvanced: 1},
			wantInds:   []string{},
		},
		{
			name:       "long question and long answer",
			question:   "w1 w2 w3 w4 w5 w6 w7 w8 w9 w10 w11",
			answer:     strings.TrimSpace(strings.Repeat("word ", 30)),
			wantLevel:  model.TierAdvanced,
			wantConf:   1.0,
			wantScores: map[model.Tier]int{model.TierBasic: 0, model.TierIntermediate: 0, model.TierAdvanced: 2},
			wantInds:   []string{},
		},
		{
			name:       "manner indicator with medium answer",
			question:   "ఇది ఎలా జరిగింది?",
			answer:     strings.TrimSpace(strings.Repeat("పదం ", 15)),
			wantLevel:  model.TierIntermediate,
			wantConf:   0.75,
			wantScores: map[model.Tier]int{model.TierBasic: 1, model.TierIntermediate: 3, model.TierAdvanced: 0},
			wantInds:   []string{"ఎలా"},
		},
		{
			name:       "advanced indicators reported in table order",
			question:   "ఈ ప్రక్రియను వివరించండి",
			answer:     "రెండు పదాలు",
			wantLevel:  model.TierAdvanced,
			wantConf:   0.67,
			wantScores: map[model.Tier]int{model.TierBasic: 2, model.TierIntermediate: 0, model.TierAdvanced: 4},
			wantInds:   []string{"వివరించండి", "ప్రక్రియ"},
		},
		{
			name:       "answer vocabulary",
			question:   "ఏది?",
			answer:     "చాలా పెద్ద అసాధారణమైన కట్టడం",
			wantLevel:  model.TierBasic,
			wantConf:   0.75,
			wantScores: map[model.Tier]int{model.TierBasic: 3, model.TierIntermediate: 0, model.TierAdvanced: 1},
			wantInds:   []string{},
		},
		{
			name:       "empty input",
			question:   "",
			answer:     "",
			wantLevel:  model.TierBasic,
			wantConf:   1.0,
			wantScores: map[model.Tier]int{model.TierBasic: 2, model.TierIntermediate: 0, model.TierAdvanced: 0},
			wantInds:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.question, tt.answer, "ignored context")
			if got.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", got.Level, tt.wantLevel)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
			if !reflect.DeepEqual(got.Scores, tt.wantScores) {
				t.Errorf("Scores = %v, want %v", got.Scores, tt.wantScores)
			}
			if !reflect.DeepEqual(got.Factors.ComplexIndicators, tt.wantInds) {
				t.Errorf("ComplexIndicators = %q, want %q", got.Factors.ComplexIndicators, tt.wantInds)
			}
		})
	}
}

func TestScoreFactors(t *testing.T) {
	got := Score("రాముడు ఎక్కడ వెళ్ళాడు?", "హైదరాబాద్ నగరం", "")
	if got.Factors.QuestionLength != 3 {
		t.Errorf("QuestionLength = %d, want 3", got.Factors.QuestionLength)
	}
	if got.Factors.AnswerLength != 2 {
		t.Errorf("AnswerLength = %d, want 2", got.Factors.AnswerLength)
	}
}

func TestScoreCaseInsensitiveIndicators(t *testing.T) {
	// Indicators are Telugu and have no case, but lowering must not break matching.
	got := Score("ఎవరు VISITED?", "x", "")
	if len(got.Factors.ComplexIndicators) != 1 || got.Factors.ComplexIndicators[0] != "ఎవరు" {
		t.Errorf("ComplexIndicators = %q, want [ఎవరు]", got.Factors.ComplexIndicators)
	}
}

func TestScoreBounds(t *testing.T) {
	inputs := [][2]string{
		{"ఎవరు ఎక్కడ ఎప్పుడు ఎలా ఎందుకు వివరించండి", "అపూర్వమైన ముఖ్యమైన మంచి"},
		{"?", "."},
		{strings.Repeat("ప్రభావం ", 40), strings.Repeat("అసమానమైన ", 40)},
	}
	for _, in := range inputs {
		got := Score(in[0], in[1], "")
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("Score(%q) confidence %v out of [0,1]", in[0], got.Confidence)
		}
		for tier, s := range got.Scores {
			if s < 0 {
				t.Errorf("Score(%q) negative score for %s: %d", in[0], tier, s)
			}
		}
		valid := false
		for _, tier := range model.Tiers {
			if got.Level == tier {
				valid = true
			}
		}
		if !valid {
			t.Errorf("Score(%q) level %q is not a tier", in[0], got.Level)
		}
	}
}

func TestConfidenceZeroTotal(t *testing.T) {
	if got := confidence(0, 0); got != 0 {
		t.Errorf("confidence(0, 0) = %v, want 0", got)
	}
	if got := confidence(3, 2); got != 1 {
		t.Errorf("confidence(3, 2) = %v, want clamp to 1", got)
	}
}

func TestScoreIgnoresContext(t *testing.T) {
	q, a := "రాముడు ఎక్కడ వెళ్ళాడు?", "హైదరాబాద్ నగరం"
	want := Score(q, a, "")
	got := Score(q, a, "ఈ సందర్భం విశ్లేషించండి ఎందుకు మూల్యాంకనం")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("context changed the result: got %+v, want %+v", got, want)
	}
}
