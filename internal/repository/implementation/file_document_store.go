package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"neurax-chat-be/internal/model"
	"neurax-chat-be/internal/repository/contract"
)

const (
	settingsFileName      = "settings.json"
	conversationsFileName = "conversations.json"
)

// FileDocumentStore keeps the documents as JSON files in a data directory.
// Writes go through a temp file and rename so a crash mid-write never leaves
// a truncated document behind.
type FileDocumentStore struct {
	dir string
}

func NewFileDocumentStore(dir string) (contract.DocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileDocumentStore{dir: dir}, nil
}

func (s *FileDocumentStore) LoadSettings(_ context.Context) (*model.SettingsDocument, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read settings document: %w", err)
	}
	var doc model.SettingsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode settings document: %w", err)
	}
	return &doc, nil
}

func (s *FileDocumentStore) SaveSettings(_ context.Context, doc *model.SettingsDocument) error {
	return s.writeAtomic(settingsFileName, doc)
}

func (s *FileDocumentStore) LoadConversations(_ context.Context) ([]model.ConversationDocument, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, conversationsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read conversations document: %w", err)
	}
	var docs []model.ConversationDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode conversations document: %w", err)
	}
	return docs, nil
}

func (s *FileDocumentStore) SaveConversations(_ context.Context, docs []model.ConversationDocument) error {
	if docs == nil {
		docs = []model.ConversationDocument{}
	}
	return s.writeAtomic(conversationsFileName, docs)
}

func (s *FileDocumentStore) writeAtomic(name string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
