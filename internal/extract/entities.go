// Package extract splits Telugu text into sentences and pulls heuristic
// entity mentions out of each sentence with fixed pattern tables.
package extract

import (
	"regexp"
	"strings"

	"github.com/chaitu-2303/Q-A/internal/model"
)

// wordRun matches one or more word characters. Telugu vowel signs and the
// virama are combining marks, so \p{M} is required to keep words whole.
const wordRun = `[\p{L}\p{M}\p{N}_]+`

var (
	// Names ending with a common honorific or given-name suffix.
	personPatterns = []*regexp.Regexp{
		regexp.MustCompile(wordRun + `రావు`),
		regexp.MustCompile(wordRun + `కుమార్`),
		regexp.MustCompile(wordRun + `దేవి`),
	}

	locationIndicators = []string{"నగరం", "పల్లె", "గ్రామం", "పట్టణం", "రాష్ట్రం"}
	locationPatterns   = compileLocationPatterns(locationIndicators)

	// Years, day-of-month ordinals, then "<name> మాసం" month mentions.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\p{Nd}{4}`),
		regexp.MustCompile(`\p{Nd}{1,2}వ తేదీ`),
		regexp.MustCompile(wordRun + ` మాసం`),
	}
)

func compileLocationPatterns(indicators []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(indicators))
	for i, ind := range indicators {
		patterns[i] = regexp.MustCompile(wordRun + `\s*` + regexp.QuoteMeta(ind))
	}
	return patterns
}

// Extract finds person, location and date mentions in a sentence.
// The result depends only on the sentence text.
func Extract(sentence string) model.EntitySet {
	entities := model.EntitySet{
		Persons:       []string{},
		Locations:     []string{},
		Dates:         []string{},
		Organizations: []string{},
	}

	for _, p := range personPatterns {
		entities.Persons = append(entities.Persons, p.FindAllString(sentence, -1)...)
	}

	// Only the first word preceding each indicator is captured.
	for i, ind := range locationIndicators {
		if !strings.Contains(sentence, ind) {
			continue
		}
		if m := locationPatterns[i].FindString(sentence); m != "" {
			entities.Locations = append(entities.Locations, m)
		}
	}

	for _, p := range datePatterns {
		entities.Dates = append(entities.Dates, p.FindAllString(sentence, -1)...)
	}

	return entities
}
