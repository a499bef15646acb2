package memory

import (
	"context"
	"sync"
	"time"

	"neurax-chat-be/internal/entity"
	"neurax-chat-be/internal/mapper"
	"neurax-chat-be/internal/model"
	"neurax-chat-be/internal/repository/contract"

	"github.com/google/uuid"
)

// ConversationRepository holds the full conversation list in memory, ordered
// newest-first, and writes the whole list through to the document store after
// every mutation. A persistence failure is reported but the in-memory state
// keeps the mutation.
type ConversationRepository struct {
	mu     sync.RWMutex
	items  []*entity.Conversation
	store  contract.DocumentStore
	mapper *mapper.ChatMapper
}

func NewConversationRepository(store contract.DocumentStore, m *mapper.ChatMapper) *ConversationRepository {
	return &ConversationRepository{store: store, mapper: m}
}

// Load replaces the in-memory list with the persisted document.
func (r *ConversationRepository) Load(ctx context.Context) error {
	docs, err := r.store.LoadConversations(ctx)
	if err != nil {
		return err
	}
	items := make([]*entity.Conversation, 0, len(docs))
	for i := range docs {
		items = append(items, r.mapper.ConversationToEntity(&docs[i]))
	}
	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
	return nil
}

// List returns deep copies so callers cannot mutate repository state.
func (r *ConversationRepository) List(_ context.Context) []*entity.Conversation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Conversation, len(r.items))
	for i, c := range r.items {
		out[i] = copyConversation(c)
	}
	return out
}

func (r *ConversationRepository) Get(_ context.Context, id uuid.UUID) (*entity.Conversation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.Id == id {
			return copyConversation(c), true
		}
	}
	return nil, false
}

// Create prepends a new conversation so the list stays newest-first.
func (r *ConversationRepository) Create(ctx context.Context, title, provider string) (*entity.Conversation, error) {
	now := time.Now()
	conv := &entity.Conversation{
		Id:        uuid.New(),
		Title:     title,
		Provider:  provider,
		Messages:  []*entity.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.mu.Lock()
	r.items = append([]*entity.Conversation{conv}, r.items...)
	r.mu.Unlock()
	return copyConversation(conv), r.persist(ctx)
}

// AppendMessage is a silent no-op when the conversation no longer exists, so
// a turn finishing after its conversation was deleted discards the result.
func (r *ConversationRepository) AppendMessage(ctx context.Context, id uuid.UUID, msg *entity.ChatMessage) error {
	r.mu.Lock()
	var found bool
	for _, c := range r.items {
		if c.Id == id {
			c.Messages = append(c.Messages, copyMessage(msg))
			c.UpdatedAt = time.Now()
			found = true
			break
		}
	}
	r.mu.Unlock()
	if !found {
		return nil
	}
	return r.persist(ctx)
}

func (r *ConversationRepository) SetTitle(ctx context.Context, id uuid.UUID, title string) (bool, error) {
	r.mu.Lock()
	var found bool
	for _, c := range r.items {
		if c.Id == id {
			c.Title = title
			c.UpdatedAt = time.Now()
			found = true
			break
		}
	}
	r.mu.Unlock()
	if !found {
		return false, nil
	}
	return true, r.persist(ctx)
}

func (r *ConversationRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	var found bool
	for i, c := range r.items {
		if c.Id == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			found = true
			break
		}
	}
	r.mu.Unlock()
	if !found {
		return false, nil
	}
	return true, r.persist(ctx)
}

func (r *ConversationRepository) persist(ctx context.Context) error {
	r.mu.RLock()
	docs := make([]model.ConversationDocument, 0, len(r.items))
	for _, c := range r.items {
		docs = append(docs, r.mapper.ConversationToDocument(c))
	}
	r.mu.RUnlock()
	return r.store.SaveConversations(ctx, docs)
}

func copyConversation(c *entity.Conversation) *entity.Conversation {
	out := *c
	out.Messages = make([]*entity.ChatMessage, len(c.Messages))
	for i, m := range c.Messages {
		out.Messages[i] = copyMessage(m)
	}
	return &out
}

func copyMessage(m *entity.ChatMessage) *entity.ChatMessage {
	out := *m
	if m.Attachments != nil {
		out.Attachments = append([]entity.Attachment(nil), m.Attachments...)
	}
	if m.GroundingSources != nil {
		out.GroundingSources = append([]entity.GroundingSource(nil), m.GroundingSources...)
	}
	return &out
}
