package search

import (
	"regexp"

	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/models"
	"go.uber.org/zap"
)

// PatternSearch compiles the query as a regular expression, after the
// contraction/apostrophe rewrite from flexiblePattern, and scores messages by
// match count (capped at 5) and first-match position. A pattern that fails to
// compile falls back to exact search on the original, unrewritten query.
func (m *Manager) PatternSearch(query string, messages []*models.Message) []models.ScoredResult {
	var opts config.RegexOptions
	if mode, ok := m.modes[ModeRegex]; ok {
		opts = mode.Options
	}
	weight := m.modeWeight(ModeRegex)

	pattern := flexiblePattern(Normalize(query))

	maxLen := opts.MaxPatternLength
	if maxLen == 0 {
		maxLen = 1000
	}
	if len(pattern) > maxLen {
		pattern = pattern[:maxLen]
	}

	// RE2 is always Unicode-aware, so the unicode option maps to no flag.
	prefix := ""
	if opts.IgnoreCaseOrDefault() {
		prefix += "(?i)"
	}
	if opts.DotAll {
		prefix += "(?s)"
	}

	re, err := regexp.Compile(prefix + pattern)
	if err != nil {
		m.logger.Warn("invalid regex pattern, falling back to exact search",
			zap.String("pattern", pattern),
			zap.Error(err))
		return m.ExactSearch(query, messages)
	}

	results := make([]models.ScoredResult, 0)
	for _, msg := range messages {
		text := Normalize(msg.Text)
		if text == "" {
			continue
		}
		matches := re.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		matchCount := min(len(matches), 5)
		positionFactor := 1.0 - float64(matches[0][0])/float64(len(text))
		score := weight * (0.6 + 0.2*float64(matchCount) + 0.2*positionFactor)
		results = append(results, models.ScoredResult{Score: score, Message: msg})
	}

	sortByScore(results)
	return results
}
