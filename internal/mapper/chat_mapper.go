package mapper

import (
	"time"

	"neurax-chat-be/internal/entity"
	"neurax-chat-be/internal/model"

	"github.com/google/uuid"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ConversationToDocument(c *entity.Conversation) model.ConversationDocument {
	messages := make([]model.MessageDocument, len(c.Messages))
	for i, msg := range c.Messages {
		messages[i] = m.MessageToDocument(msg)
	}
	return model.ConversationDocument{
		Id:        c.Id.String(),
		Title:     c.Title,
		Messages:  messages,
		CreatedAt: c.CreatedAt.UnixMilli(),
		UpdatedAt: c.UpdatedAt.UnixMilli(),
		Provider:  c.Provider,
	}
}

func (m *ChatMapper) ConversationToEntity(doc *model.ConversationDocument) *entity.Conversation {
	id, err := uuid.Parse(doc.Id)
	if err != nil {
		id = uuid.New()
	}
	messages := make([]*entity.ChatMessage, len(doc.Messages))
	for i := range doc.Messages {
		messages[i] = m.MessageToEntity(&doc.Messages[i])
	}
	return &entity.Conversation{
		Id:        id,
		Title:     doc.Title,
		Provider:  doc.Provider,
		Messages:  messages,
		CreatedAt: time.UnixMilli(doc.CreatedAt),
		UpdatedAt: time.UnixMilli(doc.UpdatedAt),
	}
}

func (m *ChatMapper) MessageToDocument(msg *entity.ChatMessage) model.MessageDocument {
	doc := model.MessageDocument{
		Id:        msg.Id.String(),
		Role:      msg.Role,
		Content:   msg.Content,
		Timestamp: msg.CreatedAt.UnixMilli(),
	}
	for _, att := range msg.Attachments {
		doc.Attachments = append(doc.Attachments, model.AttachmentDocument{
			Name:     att.Name,
			MimeType: att.MimeType,
			Data:     att.Data,
		})
	}
	for _, src := range msg.GroundingSources {
		doc.GroundingSources = append(doc.GroundingSources, model.GroundingSourceDocument{
			Title: src.Title,
			URI:   src.URI,
		})
	}
	return doc
}

func (m *ChatMapper) MessageToEntity(doc *model.MessageDocument) *entity.ChatMessage {
	id, err := uuid.Parse(doc.Id)
	if err != nil {
		id = uuid.New()
	}
	msg := &entity.ChatMessage{
		Id:        id,
		Role:      doc.Role,
		Content:   doc.Content,
		CreatedAt: time.UnixMilli(doc.Timestamp),
	}
	for _, att := range doc.Attachments {
		msg.Attachments = append(msg.Attachments, entity.Attachment{
			Name:     att.Name,
			MimeType: att.MimeType,
			Data:     att.Data,
		})
	}
	for _, src := range doc.GroundingSources {
		msg.GroundingSources = append(msg.GroundingSources, entity.GroundingSource{
			Title: src.Title,
			URI:   src.URI,
		})
	}
	return msg
}

func (m *ChatMapper) SettingsToDocument(s *entity.AppSettings) *model.SettingsDocument {
	return &model.SettingsDocument{
		Provider:          s.Provider,
		Model:             s.Model,
		Temperature:       s.Temperature,
		EnableThinking:    s.EnableThinking,
		ThinkingBudget:    s.ThinkingBudget,
		EnableWebSearch:   s.EnableWebSearch,
		SystemInstruction: s.SystemInstruction,
		UserName:          s.UserName,
	}
}

func (m *ChatMapper) SettingsToEntity(doc *model.SettingsDocument) entity.AppSettings {
	return entity.AppSettings{
		Provider:          doc.Provider,
		Model:             doc.Model,
		Temperature:       doc.Temperature,
		EnableThinking:    doc.EnableThinking,
		ThinkingBudget:    doc.ThinkingBudget,
		EnableWebSearch:   doc.EnableWebSearch,
		SystemInstruction: doc.SystemInstruction,
		UserName:          doc.UserName,
	}
}
