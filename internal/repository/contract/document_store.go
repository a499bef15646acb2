package contract

import (
	"context"

	"neurax-chat-be/internal/model"
)

// DocumentStore persists the two application documents. Saves replace the
// whole document, last writer wins.
type DocumentStore interface {
	// LoadSettings returns nil with no error when no settings were saved yet.
	LoadSettings(ctx context.Context) (*model.SettingsDocument, error)
	SaveSettings(ctx context.Context, doc *model.SettingsDocument) error
	LoadConversations(ctx context.Context) ([]model.ConversationDocument, error)
	SaveConversations(ctx context.Context, docs []model.ConversationDocument) error
}
