// Package storage defines the persistence interface for chat messages.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/kensaku/internal/models"
)

// ErrMessageNotFound is returned when a message name matches no stored message.
var ErrMessageNotFound = errors.New("message not found")

// MessageStore defines message persistence operations.
type MessageStore interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessage(ctx context.Context, name string) (*models.Message, error)
	DeleteMessage(ctx context.Context, name string) error
	ListMessages(ctx context.Context, offset, limit int) ([]*models.Message, error)
	// AllMessages returns every stored message in creation order. Search scans
	// the full list per call, so this is the read path the server uses.
	AllMessages(ctx context.Context) ([]*models.Message, error)
	CountMessages(ctx context.Context) (int64, error)

	Close() error
}
