// Package synth turns a sentence and its entity mentions into question and
// answer candidates.
package synth

import (
	"fmt"
	"strings"

	"github.com/chaitu-2303/Q-A/internal/model"
)

// Interrogative markers substituted for entity spans.
const (
	markerWho   = "ఎవరు"
	markerWhere = "ఎక్కడ"
	markerWhen  = "ఎప్పుడు"
)

var (
	causalKeywords = []string{"కారణంగా", "వల్ల", "ఎందుకంటే"}
	mannerKeywords = []string{"విధంగా", "ద్వారా"}
)

// Synthesize returns the candidates for one sentence. Context is left empty
// for the caller to fill in.
func Synthesize(sentence string, entities model.EntitySet) []model.Candidate {
	var out []model.Candidate

	out = appendSubstitutions(out, sentence, entities.Persons, markerWho, model.TypeWho)
	out = appendSubstitutions(out, sentence, entities.Locations, markerWhere, model.TypeWhere)
	out = appendSubstitutions(out, sentence, entities.Dates, markerWhen, model.TypeWhen)

	if _, before, after, ok := splitOnFirstKeyword(sentence, causalKeywords); ok && before != "" {
		out = append(out, model.Candidate{
			Question: after + "కి కారణం ఏమిటి?",
			Answer:   before,
			Type:     model.TypeWhy,
		})
	}

	if kw, before, after, ok := splitOnFirstKeyword(sentence, mannerKeywords); ok {
		out = append(out, model.Candidate{
			Question: before + " ఎలా జరిగింది?",
			Answer:   kw + after,
			Type:     model.TypeHow,
		})
	}

	if len(out) == 0 {
		out = append(out, model.Candidate{
			Question: fmt.Sprintf("'%s' గురించి వివరించండి.", sentence),
			Answer:   sentence,
			Type:     model.TypeWhat,
		})
	}
	return out
}

func appendSubstitutions(out []model.Candidate, sentence string, spans []string, marker string, typ model.QuestionType) []model.Candidate {
	for _, span := range spans {
		if span == "" {
			continue
		}
		out = append(out, model.Candidate{
			Question: replaceFirst(sentence, span, marker) + "?",
			Answer:   span,
			Type:     typ,
		})
	}
	return out
}

// splitOnFirstKeyword picks the first keyword, in list order, that occurs in
// sentence and splits at its first occurrence. Both halves are trimmed.
func splitOnFirstKeyword(sentence string, keywords []string) (kw, before, after string, ok bool) {
	for _, k := range keywords {
		if b, a, found := strings.Cut(sentence, k); found {
			return k, strings.TrimSpace(b), strings.TrimSpace(a), true
		}
	}
	return "", "", "", false
}

// replaceFirst replaces only the first occurrence of old in s.
func replaceFirst(s, old, repl string) string {
	return strings.Replace(s, old, repl, 1)
}
