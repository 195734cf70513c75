package search

import (
	"strings"

	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/pkg/utils"
	"go.uber.org/zap"
)

// ExactSearch performs case-insensitive substring matching with contraction
// variant expansion. Each message contributes at most one result, scored on
// the first alternative that matches it; alternatives other than the original
// query carry a 0.9 penalty.
func (m *Manager) ExactSearch(query string, messages []*models.Message) []models.ScoredResult {
	weight := m.modeWeight(ModeExact)
	queryLower := strings.ToLower(Normalize(query))
	alternatives := expandQuery(queryLower)
	m.logger.Debug("exact search",
		zap.String("query", queryLower),
		zap.Int("alternatives", len(alternatives)))

	results := make([]models.ScoredResult, 0)
	for _, msg := range messages {
		text := strings.ToLower(Normalize(msg.Text))
		for _, alt := range alternatives {
			idx := strings.Index(text, alt)
			if idx < 0 {
				continue
			}
			matchCount := strings.Count(text, alt)
			positionFactor := 0.0
			if text != "" {
				positionFactor = 1.0 - float64(idx)/float64(len(text)+1)
			}
			score := weight * (0.6 + 0.2*float64(matchCount) + 0.2*positionFactor)
			if alt != queryLower {
				score *= 0.9
			}
			m.logger.Debug("exact match",
				zap.String("alternative", alt),
				zap.String("text", utils.Truncate(text, 100)))
			results = append(results, models.ScoredResult{Score: score, Message: msg})
			break
		}
	}

	sortByScore(results)
	return results
}
