// Package ingest imports message records from JSON drop files into the store.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/internal/storage"
	"go.uber.org/zap"
)

// Importer reads message JSON files and writes them to a MessageStore.
type Importer struct {
	store  storage.MessageStore
	logger *zap.Logger
}

// NewImporter creates an importer writing to store.
func NewImporter(store storage.MessageStore, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{store: store, logger: logger}
}

// ImportFile reads a .json file holding a single message object or an array
// of message objects and stores each one. Messages without a name are
// assigned one under spaces/local. Returns the number of messages stored.
func (i *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return 0, fmt.Errorf("unsupported file type: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	messages, err := decodeMessages(data)
	if err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	stored := 0
	for _, msg := range messages {
		if msg.Name == "" {
			msg.Name = "spaces/local/messages/" + uuid.NewString()
		}
		if err := i.store.CreateMessage(ctx, msg); err != nil {
			return stored, fmt.Errorf("failed to store %s: %w", msg.Name, err)
		}
		stored++
	}
	i.logger.Debug("imported message file", zap.String("path", path), zap.Int("messages", stored))
	return stored, nil
}

// ImportDir imports every .json file directly under dir. Malformed files are
// logged and skipped; the import continues. Returns the total number of
// messages stored.
func (i *Importer) ImportDir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	total := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		n, err := i.ImportFile(ctx, path)
		if err != nil {
			i.logger.Warn("skipping message file", zap.String("path", path), zap.Error(err))
			continue
		}
		total += n
	}
	i.logger.Info("imported message directory", zap.String("dir", dir), zap.Int("messages", total))
	return total, nil
}

// decodeMessages accepts either a single message object or an array.
func decodeMessages(data []byte) ([]*models.Message, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var messages []*models.Message
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, err
		}
		return messages, nil
	}
	var msg models.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return []*models.Message{&msg}, nil
}
