package model

import "time"

// HistoryExport is the top-level JSON structure for generation history export.
type HistoryExport struct {
	Service     string             `json:"service"`
	ExportedAt  time.Time          `json:"exported_at"`
	Count       int                `json:"count"`
	Generations []GenerationExport `json:"generations"`
}

// GenerationExport holds one stored generation with its statistics.
type GenerationExport struct {
	Generation
	Statistics LevelStatistics `json:"statistics"`
}

// HistoryPage is one page of the generation history listing.
type HistoryPage struct {
	Total       int                 `json:"total"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
	Generations []GenerationSummary `json:"generations"`
}
