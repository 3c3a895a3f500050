package model

import "time"

// Tier represents a question difficulty classification.
type Tier string

const (
	// TierBasic is the easiest difficulty tier.
	TierBasic Tier = "basic"
	// TierIntermediate is the middle difficulty tier.
	TierIntermediate Tier = "intermediate"
	// TierAdvanced is the hardest difficulty tier.
	TierAdvanced Tier = "advanced"
)

// Tiers lists every tier in declaration order. Score ties resolve to the
// earliest tier in this slice.
var Tiers = []Tier{TierBasic, TierIntermediate, TierAdvanced}

// DifficultyMixed requests questions of every tier.
const DifficultyMixed = "mixed"

// ParseDifficulty validates a requested difficulty. An empty string means mixed.
func ParseDifficulty(s string) (string, bool) {
	switch s {
	case "":
		return DifficultyMixed, true
	case DifficultyMixed, string(TierBasic), string(TierIntermediate), string(TierAdvanced):
		return s, true
	}
	return "", false
}

// QuestionType is the interrogative category of a generated question.
type QuestionType string

const (
	TypeWho   QuestionType = "who"
	TypeWhat  QuestionType = "what"
	TypeWhen  QuestionType = "when"
	TypeWhere QuestionType = "where"
	TypeWhy   QuestionType = "why"
	TypeHow   QuestionType = "how"
)

// EntitySet holds the entity mentions found in one sentence, in discovery order.
type EntitySet struct {
	Persons       []string `json:"persons"`
	Locations     []string `json:"locations"`
	Dates         []string `json:"dates"`
	Organizations []string `json:"organizations"` // never populated yet
}

// Candidate is an unscored question/answer pair.
type Candidate struct {
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Type     QuestionType `json:"type"`
	Context  string       `json:"context"`
}

// Factors records the inputs that influenced a level decision.
type Factors struct {
	QuestionLength    int      `json:"question_length"`
	AnswerLength      int      `json:"answer_length"`
	ComplexIndicators []string `json:"complex_indicators"`
}

// LevelResult is the outcome of difficulty analysis for one candidate.
type LevelResult struct {
	Level      Tier         `json:"level"`
	Confidence float64      `json:"confidence"`
	Scores     map[Tier]int `json:"scores"`
	Factors    Factors      `json:"factors"`
}

// ScoredQA is a candidate together with its level analysis.
type ScoredQA struct {
	Candidate
	LevelResult
}

// NewScoredQA combines a candidate and its level analysis into a new value.
func NewScoredQA(c Candidate, r LevelResult) ScoredQA {
	return ScoredQA{Candidate: c, LevelResult: r}
}

// LevelStatistics summarises the level distribution of a set of pairs.
type LevelStatistics struct {
	TotalQuestions         int              `json:"total_questions"`
	LevelDistribution      map[Tier]int     `json:"level_distribution"`
	PercentageDistribution map[Tier]float64 `json:"percentage_distribution"`
	AverageConfidence      float64          `json:"average_confidence"`
}

// GenerateRequest is the JSON body of POST /api/generate-qa.
// NumQuestions is a pointer so an explicit 0 differs from an absent field.
type GenerateRequest struct {
	Paragraph    string `json:"paragraph"`
	NumQuestions *int   `json:"num_questions,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
}

// GenerateResponse is the success payload of POST /api/generate-qa.
type GenerateResponse struct {
	Success        bool            `json:"success"`
	QAPairs        []ScoredQA      `json:"qa_pairs"`
	TotalQuestions int             `json:"total_questions"`
	Statistics     LevelStatistics `json:"statistics"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServiceName identifies the service in health checks and exports.
const ServiceName = "telugu-qa-generator"

// HealthResponse is the static payload of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Generation is one stored request and its generated pairs.
type Generation struct {
	ID           string     `json:"id"`
	Paragraph    string     `json:"paragraph"`
	NumQuestions int        `json:"num_questions"`
	Difficulty   string     `json:"difficulty"`
	CreatedAt    time.Time  `json:"created_at"`
	QAPairs      []ScoredQA `json:"qa_pairs"`
}

// GenerationSummary is a history listing row.
type GenerationSummary struct {
	ID                string    `json:"id"`
	NumQuestions      int       `json:"num_questions"`
	Difficulty        string    `json:"difficulty"`
	TotalQuestions    int       `json:"total_questions"`
	AverageConfidence float64   `json:"average_confidence"`
	CreatedAt         time.Time `json:"created_at"`
}

// ServiceConfig holds runtime server parameters set via flags, env or config file.
type ServiceConfig struct {
	Addr                string        `yaml:"addr"`
	DB                  string        `yaml:"db"`
	Lang                string        `yaml:"lang"`
	DefaultNumQuestions int           `yaml:"default_num_questions"`
	MaxNumQuestions     int           `yaml:"max_num_questions"`
	CacheTTL            time.Duration `yaml:"cache_ttl"`
	RateLimit           float64       `yaml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst           int           `yaml:"rate_burst"`
	CORSOrigins         []string      `yaml:"cors_origins"`
	LogLevel            string        `yaml:"log_level"`
	LogFormat           string        `yaml:"log_format"`
}
