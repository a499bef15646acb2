package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"neurax-chat-be/internal/dto"
	"neurax-chat-be/internal/mapper"
	"neurax-chat-be/internal/model"
	"neurax-chat-be/internal/pkg/serverutils"
	"neurax-chat-be/internal/repository/memory"
	"neurax-chat-be/internal/service"
	"neurax-chat-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type memoryStore struct {
	mu            sync.Mutex
	settings      *model.SettingsDocument
	conversations []model.ConversationDocument
}

func (s *memoryStore) LoadSettings(context.Context) (*model.SettingsDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

func (s *memoryStore) SaveSettings(_ context.Context, doc *model.SettingsDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = doc
	return nil
}

func (s *memoryStore) LoadConversations(context.Context) ([]model.ConversationDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversations, nil
}

func (s *memoryStore) SaveConversations(_ context.Context, docs []model.ConversationDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = docs
	return nil
}

type stubPublisher struct{}

func (stubPublisher) PublishTurnEvent(*dto.TurnEvent) {}

type scriptedProvider struct {
	events []llm.Event
}

func (p *scriptedProvider) StreamChat(context.Context, *llm.ChatRequest) (<-chan llm.Event, error) {
	ch := make(chan llm.Event)
	go func() {
		defer close(ch)
		for _, ev := range p.events {
			ch <- ev
		}
	}()
	return ch, nil
}

func newTestApp(t *testing.T, provider llm.ChatProvider) (*fiber.App, service.IChatService) {
	t.Helper()

	store := &memoryStore{}
	m := mapper.NewChatMapper()
	repo := memory.NewConversationRepository(store, m)
	presence := service.NewPresenceService(memory.NewPresenceRepository())
	settings := service.NewSettingsService(store, m, presence, noopLogger{})

	chatService := service.NewChatService(
		repo,
		settings,
		presence,
		stubPublisher{},
		noopLogger{},
		"test-key",
		func(string, string) (llm.ChatProvider, error) { return provider, nil },
	)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewChatController(chatService).RegisterRoutes(api)
	NewSettingsController(settings).RegisterRoutes(api)

	return app, chatService
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := app.Test(req, 5000)
	require.NoError(t, err)
	return res
}

func decodeEnvelope[T any](t *testing.T, res *http.Response) serverutils.BaseResponse[T] {
	t.Helper()
	var envelope serverutils.BaseResponse[T]
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	return envelope
}

func TestSendEndpointRoundTrip(t *testing.T) {
	app, svc := newTestApp(t, &scriptedProvider{events: []llm.Event{
		{Text: "Hi!"},
		{Text: "Hi!", Done: true},
	}})

	res := doJSON(t, app, fiber.MethodPost, "/api/chat/v1/send", dto.SendChatRequest{Text: "hello"})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	envelope := decodeEnvelope[dto.SendChatResponse](t, res)
	assert.True(t, envelope.Success)
	assert.True(t, envelope.Data.Sent)
	assert.Equal(t, "hello", envelope.Data.Title)
	require.NotEmpty(t, envelope.Data.ConversationId)

	assert.Eventually(t, func() bool {
		return !svc.State().IsLoading
	}, 2*time.Second, 10*time.Millisecond)

	showRes := doJSON(t, app, fiber.MethodGet, "/api/chat/v1/conversations/"+envelope.Data.ConversationId, nil)
	require.Equal(t, fiber.StatusOK, showRes.StatusCode)
	conv := decodeEnvelope[dto.ConversationDTO](t, showRes)
	require.Len(t, conv.Data.Messages, 2)
	assert.Equal(t, "Hi!", conv.Data.Messages[1].Content)
}

func TestSendEndpointRejectsEmptyBody(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	res := doJSON(t, app, fiber.MethodPost, "/api/chat/v1/send", dto.SendChatRequest{Text: "  "})
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	envelope := decodeEnvelope[any](t, res)
	assert.False(t, envelope.Success)
}

func TestConversationEndpointsNotFound(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	res := doJSON(t, app, fiber.MethodGet, "/api/chat/v1/conversations/3f5a9e9e-0000-4000-8000-000000000000", nil)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	res = doJSON(t, app, fiber.MethodDelete, "/api/chat/v1/conversations/3f5a9e9e-0000-4000-8000-000000000000", nil)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestCreateListSelectConversations(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	created := decodeEnvelope[dto.ConversationDTO](t,
		doJSON(t, app, fiber.MethodPost, "/api/chat/v1/conversations", nil))
	require.NotEmpty(t, created.Data.Id)
	assert.Equal(t, "New Conversation", created.Data.Title)

	list := decodeEnvelope[[]dto.ConversationSummaryDTO](t,
		doJSON(t, app, fiber.MethodGet, "/api/chat/v1/conversations", nil))
	require.Len(t, list.Data, 1)

	res := doJSON(t, app, fiber.MethodPut, "/api/chat/v1/conversations/"+created.Data.Id+"/select", nil)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res = doJSON(t, app, fiber.MethodPut, "/api/chat/v1/conversations/"+created.Data.Id+"/title",
		dto.RenameConversationRequest{Title: "Renamed"})
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	state := decodeEnvelope[dto.ChatStateDTO](t,
		doJSON(t, app, fiber.MethodGet, "/api/chat/v1/state", nil))
	assert.Equal(t, created.Data.Id, state.Data.CurrentConversationId)
}

func TestRenameValidation(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	created := decodeEnvelope[dto.ConversationDTO](t,
		doJSON(t, app, fiber.MethodPost, "/api/chat/v1/conversations", nil))

	res := doJSON(t, app, fiber.MethodPut, "/api/chat/v1/conversations/"+created.Data.Id+"/title",
		dto.RenameConversationRequest{Title: ""})
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestModelsEndpoint(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	res := doJSON(t, app, fiber.MethodGet, "/api/chat/v1/models", nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	envelope := decodeEnvelope[[]map[string]interface{}](t, res)
	assert.Len(t, envelope.Data, 4)
}

func TestSettingsEndpointsRoundTrip(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	current := decodeEnvelope[dto.SettingsDTO](t,
		doJSON(t, app, fiber.MethodGet, "/api/settings/v1", nil))
	assert.Equal(t, "gemini-2.5-flash", current.Data.Model)

	res := doJSON(t, app, fiber.MethodPut, "/api/settings/v1", dto.SettingsDTO{
		Provider:    "gemini",
		Model:       "gemini-3-pro-preview",
		Temperature: 1.0,
	})
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	updated := decodeEnvelope[dto.SettingsDTO](t,
		doJSON(t, app, fiber.MethodGet, "/api/settings/v1", nil))
	assert.Equal(t, "gemini-3-pro-preview", updated.Data.Model)
}

func TestSettingsValidation(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	res := doJSON(t, app, fiber.MethodPut, "/api/settings/v1", dto.SettingsDTO{
		Provider:    "gemini",
		Model:       "gemini-2.5-flash",
		Temperature: 9.9,
	})
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}
