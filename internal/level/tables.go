package level

import "github.com/chaitu-2303/Q-A/internal/model"

// tierWords pairs a tier with a word list. Slices keep declaration order,
// which decides the order of reported indicators.
type tierWords struct {
	tier  model.Tier
	words []string
}

// lengthBand is a half-open word-count range [min, max). max < 0 means unbounded.
type lengthBand struct {
	tier model.Tier
	min  int
	max  int
}

// Question indicators, matched case-insensitively against the question.
var indicators = []tierWords{
	{model.TierAdvanced, []string{
		"విశ్లేషించండి", "వివరించండి", "తులనా చేయండి", "కారణాలు", "ప్రభావం",
		"పరిణామం", "సిద్ధాంతం", "సూత్రం", "ప్రక్రియ", "విధానం",
	}},
	{model.TierIntermediate, []string{
		"ఎందుకు", "ఎలా", "ఏ విధంగా", "ఏ కారణంగా", "ప్రధాన", "ముఖ్యమైన",
		"విశేషం", "ప్రత్యేకం", "విలక్షణం",
	}},
	{model.TierBasic, []string{
		"ఎవరు", "ఏమిటి", "ఎక్కడ", "ఎప్పుడు", "ఎంత", "ఏం", "ఎవరి",
	}},
}

// Answer word-count bands.
var lengthBands = []lengthBand{
	{model.TierBasic, 0, 15},
	{model.TierIntermediate, 15, 30},
	{model.TierAdvanced, 30, -1},
}

// Answer vocabulary, matched as literal substrings.
var complexityWords = []tierWords{
	{model.TierBasic, []string{"చిన్న", "పెద్ద", "మంచి", "చెడు", "కొత్త", "పాత"}},
	{model.TierIntermediate, []string{"ముఖ్యమైన", "ప్రత్యేకమైన", "విలక్షణమైన", "అద్భుతమైన"}},
	{model.TierAdvanced, []string{"అసాధారణమైన", "అద్వితీయమైన", "అపూర్వమైన", "అసమానమైన"}},
}

// Question word-count thresholds: <= basicMaxWords is basic,
// <= intermediateMaxWords is intermediate, anything longer is advanced.
const (
	basicMaxWords        = 5
	intermediateMaxWords = 10
)

func (b lengthBand) contains(n int) bool {
	return n >= b.min && (b.max < 0 || n < b.max)
}
