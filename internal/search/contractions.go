package search

import (
	"regexp"
	"strings"
)

// contractionEntry maps a contracted or expanded verb-negation form to the
// variants treated as equivalent for matching.
type contractionEntry struct {
	term     string
	variants []string
}

// exactContractionPairs is the bidirectional table used by exact search.
// Entries are ordered slices rather than a map: the first entry found in the
// query wins, and that order must be deterministic.
var exactContractionPairs = []contractionEntry{
	{"don't", []string{"didn't", "do not", "did not"}},
	{"didn't", []string{"don't", "did not", "do not"}},
	{"isn't", []string{"wasn't", "is not", "was not"}},
	{"wasn't", []string{"isn't", "was not", "is not"}},
	{"can't", []string{"couldn't", "cannot", "could not"}},
	{"couldn't", []string{"can't", "could not", "cannot"}},
	{"won't", []string{"wouldn't", "will not", "would not"}},
	{"wouldn't", []string{"won't", "would not", "will not"}},
	{"aren't", []string{"weren't", "are not", "were not"}},
	{"weren't", []string{"aren't", "were not", "are not"}},
	{"haven't", []string{"hadn't", "have not", "had not"}},
	{"hadn't", []string{"haven't", "had not", "have not"}},
}

// exactContractionTable is exactContractionPairs extended with the reverse
// index: every expanded multi-word form maps back to the contractions that
// list it, so a query already in expanded form gets contracted alternatives.
var exactContractionTable = buildExactTable()

func buildExactTable() []contractionEntry {
	index := make(map[string]int)
	var expanded []contractionEntry
	for _, e := range exactContractionPairs {
		for _, v := range e.variants {
			// Single-word variants like "cannot" are not indexed back.
			if !strings.Contains(v, " ") {
				continue
			}
			if i, ok := index[v]; ok {
				expanded[i].variants = append(expanded[i].variants, e.term)
			} else {
				index[v] = len(expanded)
				expanded = append(expanded, contractionEntry{term: v, variants: []string{e.term}})
			}
		}
	}
	table := make([]contractionEntry, 0, len(exactContractionPairs)+len(expanded))
	table = append(table, exactContractionPairs...)
	return append(table, expanded...)
}

// expandQuery returns the alternative query strings for a normalized,
// lowercased query. For every table entry found as a substring, one
// alternative is generated per variant by substring replacement. The original
// query is always first; duplicates and alternatives identical to the
// original are dropped.
func expandQuery(queryLower string) []string {
	alternatives := []string{queryLower}
	seen := map[string]bool{queryLower: true}
	for _, e := range exactContractionTable {
		if !strings.Contains(queryLower, e.term) {
			continue
		}
		for _, v := range e.variants {
			alt := strings.ReplaceAll(queryLower, e.term, strings.ToLower(v))
			if !seen[alt] {
				seen[alt] = true
				alternatives = append(alternatives, alt)
			}
		}
	}
	return alternatives
}

// regexContractions is the narrower table used by regex search. Unlike the
// exact table, each variant list includes the contraction itself, and the
// variants become branches of an alternation group rather than literal
// alternative queries.
var regexContractions = []contractionEntry{
	{"don't", []string{"didn't", "don't", "do not", "did not"}},
	{"didn't", []string{"don't", "didn't", "did not", "do not"}},
	{"isn't", []string{"wasn't", "isn't", "is not", "was not"}},
	{"wasn't", []string{"isn't", "wasn't", "was not", "is not"}},
	{"can't", []string{"couldn't", "can't", "cannot", "could not"}},
	{"couldn't", []string{"can't", "couldn't", "could not", "cannot"}},
	{"won't", []string{"wouldn't", "won't", "will not", "would not"}},
	{"wouldn't", []string{"won't", "wouldn't", "would not", "will not"}},
}

// optionalApostrophe matches an ASCII or right single-quote apostrophe, or none.
const optionalApostrophe = "['’]?"

// flexiblePattern rewrites a normalized query into a pattern that tolerates
// contraction variants and missing apostrophes. The first contraction from
// regexContractions found in the query (case-insensitively) is replaced with
// an alternation group covering all its variants, apostrophes in each variant
// made optional. When no contraction is found, any apostrophes in the query
// are made optional instead.
func flexiblePattern(query string) string {
	lower := strings.ToLower(query)
	for _, e := range regexContractions {
		if !strings.Contains(lower, e.term) {
			continue
		}
		parts := make([]string, 0, len(e.variants))
		for _, v := range e.variants {
			if strings.Contains(v, "'") {
				parts = append(parts, strings.ReplaceAll(v, "'", optionalApostrophe))
			} else {
				parts = append(parts, regexp.QuoteMeta(v))
			}
		}
		group := "(" + strings.Join(parts, "|") + ")"
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(e.term))
		if err != nil {
			continue
		}
		return re.ReplaceAllLiteralString(query, group)
	}
	if strings.Contains(query, "'") {
		return strings.ReplaceAll(query, "'", optionalApostrophe)
	}
	return query
}
