package search

import (
	"testing"

	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/models"
)

func TestHybridSearch_Union(t *testing.T) {
	m := newTestManager(t, nil)
	// "didnt" is only reachable through the regex rewrite (optional
	// apostrophe); "did not" is matched by both modes.
	messages := []*models.Message{
		msg("both", "we did not go"),
		msg("regexOnly", "they didnt go"),
	}
	results := m.HybridSearch("don't", messages)
	if !hasName(results, "both") || !hasName(results, "regexOnly") {
		t.Fatalf("hybrid should union both modes, got %v", names(results))
	}
	assertSortedDescending(t, results)
}

func TestHybridSearch_ScoreSum(t *testing.T) {
	m := newTestManager(t, nil)
	messages := []*models.Message{msg("both", "we did not go")}

	exactScore := m.ExactSearch("don't", messages)[0].Score
	regexScore := m.PatternSearch("don't", messages)[0].Score

	results := m.HybridSearch("don't", messages)
	if len(results) != 1 {
		t.Fatalf("expected one merged result, got %d", len(results))
	}
	want := exactScore*1.0 + regexScore*1.2
	if !approxEqual(results[0].Score, want) {
		t.Errorf("hybrid score = %v, want %v", results[0].Score, want)
	}
	if results[0].Score <= exactScore || results[0].Score <= regexScore {
		t.Error("merged score must exceed either contribution alone")
	}
}

func TestHybridSearch_CustomWeights(t *testing.T) {
	cfg := testConfig()
	cfg.Search.HybridWeights = map[string]float64{"exact": 0.5, "regex": 3.0}
	m := newTestManager(t, cfg)
	messages := []*models.Message{msg("both", "we did not go")}

	exactScore := m.ExactSearch("don't", messages)[0].Score
	regexScore := m.PatternSearch("don't", messages)[0].Score

	results := m.HybridSearch("don't", messages)
	want := exactScore*0.5 + regexScore*3.0
	if len(results) != 1 || !approxEqual(results[0].Score, want) {
		t.Errorf("hybrid score = %v, want %v", results[0].Score, want)
	}
}

func TestHybridSearch_SkipsUnnamedMessages(t *testing.T) {
	m := newTestManager(t, nil)
	messages := []*models.Message{
		msg("named", "hello world"),
		msg("", "hello there"),
	}
	results := m.HybridSearch("hello", messages)
	if len(results) != 1 || results[0].Message.Name != "named" {
		t.Fatalf("unnamed messages must be skipped in hybrid mode, got %v", names(results))
	}

	// The same unnamed message still shows up in plain exact search.
	if got := m.ExactSearch("hello", messages); len(got) != 2 {
		t.Errorf("exact search should include unnamed messages, got %d", len(got))
	}
}

func TestHybridSearch_TrimsQuery(t *testing.T) {
	m := newTestManager(t, nil)
	messages := []*models.Message{msg("m", "hello world")}
	trimmed := m.HybridSearch("hello", messages)
	padded := m.HybridSearch("  hello  ", messages)
	if len(trimmed) != 1 || len(padded) != 1 {
		t.Fatal("expected one result for both queries")
	}
	if !approxEqual(trimmed[0].Score, padded[0].Score) {
		t.Errorf("whitespace-padded query scored %v, want %v", padded[0].Score, trimmed[0].Score)
	}
}

func TestHybridSearch_RespectsDisabledModes(t *testing.T) {
	cfg := &config.Config{
		SearchModes: []config.SearchMode{{Name: "exact", Enabled: true}},
	}
	config.ApplyDefaults(cfg)
	m := newTestManager(t, cfg)

	// Only reachable via regex; with regex disabled hybrid finds nothing.
	results := m.HybridSearch("don't", []*models.Message{msg("m", "they didnt go")})
	if len(results) != 0 {
		t.Errorf("expected no results with regex disabled, got %v", names(results))
	}
}
