package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"neurax-chat-be/internal/model"
	"neurax-chat-be/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	documentKeySettings      = "settings"
	documentKeyConversations = "conversations"
)

// AppDocument stores one whole application document per row.
type AppDocument struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (AppDocument) TableName() string {
	return "app_documents"
}

// GormDocumentStore persists the documents in postgres, one row per document.
type GormDocumentStore struct {
	db *gorm.DB
}

func NewGormDocumentStore(db *gorm.DB) (contract.DocumentStore, error) {
	if err := db.AutoMigrate(&AppDocument{}); err != nil {
		return nil, fmt.Errorf("failed to migrate app_documents: %w", err)
	}
	return &GormDocumentStore{db: db}, nil
}

func (s *GormDocumentStore) LoadSettings(ctx context.Context) (*model.SettingsDocument, error) {
	raw, err := s.load(ctx, documentKeySettings)
	if err != nil || raw == nil {
		return nil, err
	}
	var doc model.SettingsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode settings document: %w", err)
	}
	return &doc, nil
}

func (s *GormDocumentStore) SaveSettings(ctx context.Context, doc *model.SettingsDocument) error {
	return s.save(ctx, documentKeySettings, doc)
}

func (s *GormDocumentStore) LoadConversations(ctx context.Context) ([]model.ConversationDocument, error) {
	raw, err := s.load(ctx, documentKeyConversations)
	if err != nil || raw == nil {
		return nil, err
	}
	var docs []model.ConversationDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode conversations document: %w", err)
	}
	return docs, nil
}

func (s *GormDocumentStore) SaveConversations(ctx context.Context, docs []model.ConversationDocument) error {
	if docs == nil {
		docs = []model.ConversationDocument{}
	}
	return s.save(ctx, documentKeyConversations, docs)
}

func (s *GormDocumentStore) load(ctx context.Context, key string) ([]byte, error) {
	var row AppDocument
	err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", key, err)
	}
	return row.Payload, nil
}

func (s *GormDocumentStore) save(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", key, err)
	}
	row := AppDocument{Key: key, Payload: raw, UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", key, err)
	}
	return nil
}
