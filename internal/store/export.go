package store

import (
	"fmt"
	"time"

	"github.com/chaitu-2303/Q-A/internal/level"
	"github.com/chaitu-2303/Q-A/internal/model"
)

// ExportAll builds an export document with every stored generation, newest first.
func (s *Store) ExportAll(service string) (*model.HistoryExport, error) {
	summaries, err := s.ListGenerations(0, 0)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}

	export := &model.HistoryExport{
		Service:     service,
		ExportedAt:  time.Now().UTC(),
		Generations: make([]model.GenerationExport, 0, len(summaries)),
	}
	for _, sum := range summaries {
		g, err := s.GetGeneration(sum.ID)
		if err != nil {
			return nil, fmt.Errorf("get generation %s: %w", sum.ID, err)
		}
		if g == nil {
			continue
		}
		export.Generations = append(export.Generations, model.GenerationExport{
			Generation: *g,
			Statistics: level.Statistics(g.QAPairs),
		})
	}
	export.Count = len(export.Generations)
	return export, nil
}
