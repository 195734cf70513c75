package models

// ScoredResult is a single search hit: a message with its relevance score.
// Scores are non-negative; result lists are ordered by score descending.
type ScoredResult struct {
	Score   float64  `json:"score"`
	Message *Message `json:"message"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Results   []ScoredResult `json:"results"`
	Total     int            `json:"total"`
	Query     string         `json:"query"`
	Mode      string         `json:"mode"`
	QueryTime int64          `json:"query_time_ms"`
}
