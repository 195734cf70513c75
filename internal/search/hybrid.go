package search

import (
	"strings"

	"github.com/hyperjump/kensaku/internal/models"
	"go.uber.org/zap"
)

// HybridSearch runs exact and regex search and merges their scores per
// message identity, weighted by the configured hybrid weights. A message
// found by both modes sums both contributions; messages without a name are
// skipped, since there is no identity to merge on.
func (m *Manager) HybridSearch(query string, messages []*models.Message) []models.ScoredResult {
	query = strings.TrimSpace(query)

	scores := make(map[string]float64)
	byName := make(map[string]*models.Message)
	var order []string

	accumulate := func(results []models.ScoredResult, weight float64) int {
		matched := 0
		for _, r := range results {
			name := r.Message.Name
			if name == "" {
				continue
			}
			if _, ok := scores[name]; !ok {
				order = append(order, name)
				byName[name] = r.Message
			}
			scores[name] += r.Score * weight
			matched++
		}
		return matched
	}

	if _, ok := m.modes[ModeExact]; ok {
		n := accumulate(m.ExactSearch(query, messages), m.cfg.Search.HybridWeight(ModeExact))
		m.logger.Debug("hybrid exact pass", zap.Int("matches", n))
	}
	if _, ok := m.modes[ModeRegex]; ok {
		n := accumulate(m.PatternSearch(query, messages), m.cfg.Search.HybridWeight(ModeRegex))
		m.logger.Debug("hybrid regex pass", zap.Int("matches", n))
	}

	combined := make([]models.ScoredResult, 0, len(order))
	for _, name := range order {
		combined = append(combined, models.ScoredResult{Score: scores[name], Message: byName[name]})
	}

	sortByScore(combined)
	m.logger.Debug("hybrid search combined", zap.Int("unique_matches", len(combined)))
	return combined
}
