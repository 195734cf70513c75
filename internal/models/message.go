// Package models defines core data structures for messages, search requests, and results.
package models

import "time"

// Message is a single chat message record.
// Name is the message identity in resource-name form ("spaces/<s>/messages/<m>")
// and is the dedup key for hybrid search; messages with an empty Name are still
// searchable in exact and regex modes but are skipped by hybrid aggregation.
type Message struct {
	Name       string    `json:"name" db:"name"`
	Text       string    `json:"text" db:"text"`
	Sender     string    `json:"sender,omitempty" db:"sender"`
	Space      string    `json:"space,omitempty" db:"space"`
	CreateTime time.Time `json:"create_time,omitempty" db:"create_time"`
}
