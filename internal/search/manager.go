// Package search implements text-based message search with exact, regex, and
// hybrid matching modes.
package search

import (
	"fmt"
	"sort"

	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/models"
	"go.uber.org/zap"
)

// Known mode names.
const (
	ModeExact    = "exact"
	ModeRegex    = "regex"
	ModeHybrid   = "hybrid"
	ModeSemantic = "semantic"
)

// Manager runs search operations over in-memory message lists using the
// modes enabled in configuration. Its state is read-only after construction,
// so a Manager is safe for concurrent use.
type Manager struct {
	cfg    *config.Config
	modes  map[string]config.SearchMode
	logger *zap.Logger
}

// NewManager builds a search manager from loaded configuration. The enabled
// mode set is built once here; entries named "semantic" are skipped even when
// marked enabled, since semantic retrieval is not supported.
func NewManager(cfg *config.Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	modes := make(map[string]config.SearchMode)
	for _, mode := range cfg.SearchModes {
		if !mode.Enabled {
			continue
		}
		if mode.Name == ModeSemantic {
			logger.Info("skipping semantic mode (not supported)")
			continue
		}
		modes[mode.Name] = mode
		logger.Info("enabled search mode", zap.String("mode", mode.Name))
	}
	return &Manager{cfg: cfg, modes: modes, logger: logger}
}

// DefaultMode returns the configured default mode, substituting exact when
// the default is semantic or unset.
func (m *Manager) DefaultMode() string {
	mode := m.cfg.Search.DefaultMode
	if mode == "" || mode == ModeSemantic {
		return ModeExact
	}
	return mode
}

// Search runs query over messages using the given mode and returns results
// sorted by score descending. An empty mode means the configured default;
// "semantic" is downgraded to exact. A mode name that is neither hybrid nor
// in the enabled set falls back to exact search.
func (m *Manager) Search(query string, messages []*models.Message, mode string) ([]models.ScoredResult, error) {
	if mode == "" {
		mode = m.DefaultMode()
		m.logger.Debug("using default search mode", zap.String("mode", mode))
	}
	if mode == ModeSemantic {
		m.logger.Warn("semantic search not supported, using exact search")
		mode = ModeExact
	}
	if mode != ModeHybrid {
		if _, ok := m.modes[mode]; !ok {
			m.logger.Error("search mode not configured or not enabled, falling back to exact",
				zap.String("mode", mode))
			return m.ExactSearch(query, messages), nil
		}
	}

	switch mode {
	case ModeHybrid:
		return m.HybridSearch(query, messages), nil
	case ModeExact:
		return m.ExactSearch(query, messages), nil
	case ModeRegex:
		return m.PatternSearch(query, messages), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}
}

// modeWeight returns the configured weight for a mode, defaulting to 1.0 when
// the mode is absent or carries no weight.
func (m *Manager) modeWeight(name string) float64 {
	if mode, ok := m.modes[name]; ok && mode.Weight != 0 {
		return mode.Weight
	}
	return 1.0
}

// sortByScore orders results by score descending. The sort is stable so that
// equal scores keep input iteration order.
func sortByScore(results []models.ScoredResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
