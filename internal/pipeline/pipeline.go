// Package pipeline turns a Telugu paragraph into a sized, scored list of
// question and answer pairs.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/chaitu-2303/Q-A/internal/extract"
	"github.com/chaitu-2303/Q-A/internal/level"
	"github.com/chaitu-2303/Q-A/internal/model"
	"github.com/chaitu-2303/Q-A/internal/synth"
)

// minSentenceRunes is the shortest sentence, in code points, that yields questions.
const minSentenceRunes = 10

// MaxQuestions is the largest count Generate accepts. Callers that take the
// count from user input should enforce their own, lower limit.
const MaxQuestions = 1000

var (
	// ErrGenerationFailed is returned when the pipeline hits an internal fault.
	// The accompanying result is always empty.
	ErrGenerationFailed = errors.New("qa generation failed")
	// ErrInvalidDifficulty is returned for a difficulty outside the known tiers and "mixed".
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	// ErrTooManyQuestions is returned when numQuestions exceeds MaxQuestions.
	ErrTooManyQuestions = errors.New("too many questions requested")
)

type paddingTemplate struct {
	format string
	typ    model.QuestionType
}

var paddingTemplates = []paddingTemplate{
	{"'%s' గురించి వివరించండి.", model.TypeWhat},
	{"'%s' వాక్యం ఎలా ముగుస్తుంది?", model.TypeHow},
	{"'%s' వాక్యం యొక్క ప్రాముఖ్యత ఏమిటి?", model.TypeWhy},
}

// Generator runs the question generation pipeline. It holds no per-request
// state and is safe for concurrent use.
type Generator struct {
	log *slog.Logger
}

// NewGenerator creates a Generator. A nil logger uses slog.Default().
func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{log: logger}
}

// Generate produces at most numQuestions pairs from paragraph. difficulty is
// one of the tier names or "mixed"; empty means mixed. Padding questions added
// to reach numQuestions are not filtered by difficulty. Questions, answers and
// contexts are built from the NFC form of paragraph.
func (g *Generator) Generate(paragraph string, numQuestions int, difficulty string) (pairs []model.ScoredQA, err error) {
	diff, ok := model.ParseDifficulty(difficulty)
	if !ok {
		return []model.ScoredQA{}, fmt.Errorf("%w: %q", ErrInvalidDifficulty, difficulty)
	}
	if numQuestions <= 0 {
		return []model.ScoredQA{}, nil
	}
	if numQuestions > MaxQuestions {
		return []model.ScoredQA{}, fmt.Errorf("%w: %d > %d", ErrTooManyQuestions, numQuestions, MaxQuestions)
	}

	defer func() {
		if r := recover(); r != nil {
			g.log.Error("qa generation failed", "panic", r, "num_questions", numQuestions, "difficulty", diff)
			pairs = []model.ScoredQA{}
			err = fmt.Errorf("%w: %v", ErrGenerationFailed, r)
		}
	}()

	if paragraph != "" && !extract.ContainsTelugu(paragraph) {
		g.log.Warn("paragraph contains no Telugu script", "length", len(paragraph))
	}

	return generate(paragraph, numQuestions, diff), nil
}

func generate(paragraph string, numQuestions int, difficulty string) []model.ScoredQA {
	var sentences []string
	for _, s := range extract.SplitSentences(paragraph) {
		if utf8.RuneCountInString(s) >= minSentenceRunes {
			sentences = append(sentences, s)
		}
	}

	var candidates []model.Candidate
	for _, s := range sentences {
		for _, c := range synth.Synthesize(s, extract.Extract(s)) {
			c.Context = s
			candidates = append(candidates, c)
		}
	}

	seen := make(map[string]bool, len(candidates))
	result := make([]model.ScoredQA, 0, min(numQuestions, len(candidates)))
	for _, c := range candidates {
		if seen[c.Question] {
			continue
		}
		seen[c.Question] = true

		qa := scoreFn(c)
		if difficulty != model.DifficultyMixed && string(qa.Level) != difficulty {
			continue
		}
		result = append(result, qa)
	}

	result = pad(result, sentences, seen, numQuestions)

	if len(result) > numQuestions {
		result = result[:numQuestions]
	}
	return result
}

// pad appends generic questions until target is reached, cycling through
// sentences and templates by the current result length. It stops early if a
// question collides even after adding a counter suffix.
func pad(result []model.ScoredQA, sentences []string, seen map[string]bool, target int) []model.ScoredQA {
	if len(sentences) == 0 {
		return result
	}
	for len(result) < target {
		i := len(result)
		s := sentences[i%len(sentences)]
		tmpl := paddingTemplates[i%len(paddingTemplates)]

		q := fmt.Sprintf(tmpl.format, s)
		if seen[q] {
			q = fmt.Sprintf("%s (%d)", q, i)
			if seen[q] {
				break
			}
		}
		seen[q] = true

		result = append(result, scoreFn(model.Candidate{
			Question: q,
			Answer:   s,
			Type:     tmpl.typ,
			Context:  s,
		}))
	}
	return result
}

// scoreFn is replaced in tests to force a fault inside the pipeline.
var scoreFn = score

func score(c model.Candidate) model.ScoredQA {
	return model.NewScoredQA(c, level.Score(c.Question, c.Answer, c.Context))
}
