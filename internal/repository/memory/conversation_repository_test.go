package memory

import (
	"context"
	"testing"
	"time"

	"neurax-chat-be/internal/entity"
	"neurax-chat-be/internal/mapper"
	"neurax-chat-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDocumentStore struct {
	conversations []model.ConversationDocument
	settings      *model.SettingsDocument
	saveCount     int
}

func (s *stubDocumentStore) LoadSettings(context.Context) (*model.SettingsDocument, error) {
	return s.settings, nil
}

func (s *stubDocumentStore) SaveSettings(_ context.Context, doc *model.SettingsDocument) error {
	s.settings = doc
	return nil
}

func (s *stubDocumentStore) LoadConversations(context.Context) ([]model.ConversationDocument, error) {
	return s.conversations, nil
}

func (s *stubDocumentStore) SaveConversations(_ context.Context, docs []model.ConversationDocument) error {
	s.conversations = docs
	s.saveCount++
	return nil
}

func newTestRepository(t *testing.T) (*ConversationRepository, *stubDocumentStore) {
	t.Helper()
	store := &stubDocumentStore{}
	return NewConversationRepository(store, mapper.NewChatMapper()), store
}

func TestConversationRepositoryCreatePrepends(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, "First", "gemini")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "Second", "gemini")
	require.NoError(t, err)

	list := repo.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, second.Id, list[0].Id)
	assert.Equal(t, first.Id, list[1].Id)
	assert.Equal(t, 2, store.saveCount)
}

func TestConversationRepositoryAppendMessage(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	conv, err := repo.Create(ctx, "Chat", "gemini")
	require.NoError(t, err)

	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      "user",
		Content:   "Hello",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.AppendMessage(ctx, conv.Id, msg))

	got, ok := repo.Get(ctx, conv.Id)
	require.True(t, ok)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "Hello", got.Messages[0].Content)
	assert.True(t, got.UpdatedAt.After(conv.UpdatedAt) || got.UpdatedAt.Equal(conv.UpdatedAt))

	require.Len(t, store.conversations, 1)
	require.Len(t, store.conversations[0].Messages, 1)
}

func TestConversationRepositoryAppendToUnknownIdIsNoOp(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Chat", "gemini")
	require.NoError(t, err)
	savesBefore := store.saveCount

	msg := &entity.ChatMessage{Id: uuid.New(), Role: "model", Content: "late"}
	require.NoError(t, repo.AppendMessage(ctx, uuid.New(), msg))

	list := repo.List(ctx)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Messages)
	assert.Equal(t, savesBefore, store.saveCount, "no-op append should not persist")
}

func TestConversationRepositoryListReturnsCopies(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	conv, err := repo.Create(ctx, "Chat", "gemini")
	require.NoError(t, err)
	require.NoError(t, repo.AppendMessage(ctx, conv.Id, &entity.ChatMessage{Id: uuid.New(), Role: "user", Content: "Hi"}))

	list := repo.List(ctx)
	list[0].Title = "mutated"
	list[0].Messages[0].Content = "mutated"

	got, ok := repo.Get(ctx, conv.Id)
	require.True(t, ok)
	assert.Equal(t, "Chat", got.Title)
	assert.Equal(t, "Hi", got.Messages[0].Content)
}

func TestConversationRepositorySetTitleAndDelete(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	conv, err := repo.Create(ctx, "Chat", "gemini")
	require.NoError(t, err)

	ok, err := repo.SetTitle(ctx, conv.Id, "Renamed")
	require.NoError(t, err)
	assert.True(t, ok)

	got, found := repo.Get(ctx, conv.Id)
	require.True(t, found)
	assert.Equal(t, "Renamed", got.Title)

	ok, err = repo.SetTitle(ctx, uuid.New(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, conv.Id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, repo.List(ctx))
	assert.Empty(t, store.conversations)

	ok, err = repo.Delete(ctx, conv.Id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConversationRepositoryLoad(t *testing.T) {
	store := &stubDocumentStore{
		conversations: []model.ConversationDocument{
			{
				Id:        uuid.NewString(),
				Title:     "Restored",
				Provider:  "gemini",
				CreatedAt: 1700000000000,
				UpdatedAt: 1700000001000,
				Messages: []model.MessageDocument{
					{Id: uuid.NewString(), Role: "user", Content: "Hello", Timestamp: 1700000000000},
				},
			},
		},
	}
	repo := NewConversationRepository(store, mapper.NewChatMapper())
	require.NoError(t, repo.Load(context.Background()))

	list := repo.List(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, "Restored", list[0].Title)
	require.Len(t, list[0].Messages, 1)
	assert.Equal(t, int64(1700000000000), list[0].Messages[0].CreatedAt.UnixMilli())
}
