package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"neurax-chat-be/internal/constant"
	"neurax-chat-be/internal/dto"
	"neurax-chat-be/internal/entity"
	"neurax-chat-be/internal/pkg/logger"
	"neurax-chat-be/internal/repository/memory"
	"neurax-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type IChatService interface {
	ListConversations(ctx context.Context) []dto.ConversationSummaryDTO
	GetConversation(ctx context.Context, id string) (*dto.ConversationDTO, error)
	CreateConversation(ctx context.Context) (*dto.ConversationDTO, error)
	SelectConversation(ctx context.Context, id string) error
	RenameConversation(ctx context.Context, id, title string) error
	DeleteConversation(ctx context.Context, id string) error
	Send(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	State() dto.ChatStateDTO
	Models() []constant.ModelOption
}

// chatService owns the session state machine. At most one turn is in flight,
// a send during a running turn is rejected. The turn runs detached from the
// request context so navigating away never cancels it.
type chatService struct {
	repo      *memory.ConversationRepository
	settings  ISettingsService
	presence  IPresenceService
	publisher IPublisherService
	logger    logger.ILogger

	apiKey      string
	newProvider func(providerType, apiKey string) (llm.ChatProvider, error)

	mu               sync.Mutex
	currentId        uuid.UUID
	inFlight         bool
	streamingContent string
}

func NewChatService(
	repo *memory.ConversationRepository,
	settings ISettingsService,
	presence IPresenceService,
	publisher IPublisherService,
	log logger.ILogger,
	apiKey string,
	newProvider func(providerType, apiKey string) (llm.ChatProvider, error),
) IChatService {
	return &chatService{
		repo:        repo,
		settings:    settings,
		presence:    presence,
		publisher:   publisher,
		logger:      log,
		apiKey:      apiKey,
		newProvider: newProvider,
	}
}

func (s *chatService) ListConversations(ctx context.Context) []dto.ConversationSummaryDTO {
	items := s.repo.List(ctx)
	out := make([]dto.ConversationSummaryDTO, len(items))
	for i, c := range items {
		out[i] = dto.ConversationSummaryDTO{
			Id:           c.Id.String(),
			Title:        c.Title,
			Provider:     c.Provider,
			MessageCount: len(c.Messages),
			CreatedAt:    c.CreatedAt.UnixMilli(),
			UpdatedAt:    c.UpdatedAt.UnixMilli(),
		}
	}
	return out
}

func (s *chatService) GetConversation(ctx context.Context, id string) (*dto.ConversationDTO, error) {
	convId, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrConversationNotFound
	}
	conv, ok := s.repo.Get(ctx, convId)
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conversationToDTO(conv), nil
}

// CreateConversation is the explicit "new chat" action. Unlike implicit
// creation during a send, it flashes the happy mood.
func (s *chatService) CreateConversation(ctx context.Context) (*dto.ConversationDTO, error) {
	conv, err := s.repo.Create(ctx, constant.NewConversationTitle, s.settings.Get().Provider)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.currentId = conv.Id
	s.mu.Unlock()

	s.presence.ConversationCreated()
	return conversationToDTO(conv), nil
}

func (s *chatService) SelectConversation(ctx context.Context, id string) error {
	convId, err := uuid.Parse(id)
	if err != nil {
		return ErrConversationNotFound
	}
	if _, ok := s.repo.Get(ctx, convId); !ok {
		return ErrConversationNotFound
	}

	s.mu.Lock()
	s.currentId = convId
	s.mu.Unlock()
	return nil
}

func (s *chatService) RenameConversation(ctx context.Context, id, title string) error {
	convId, err := uuid.Parse(id)
	if err != nil {
		return ErrConversationNotFound
	}
	ok, err := s.repo.SetTitle(ctx, convId, title)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConversationNotFound
	}
	return nil
}

// DeleteConversation removes a conversation. A turn still streaming into it
// keeps running and its result is discarded on arrival.
func (s *chatService) DeleteConversation(ctx context.Context, id string) error {
	convId, err := uuid.Parse(id)
	if err != nil {
		return ErrConversationNotFound
	}
	ok, err := s.repo.Delete(ctx, convId)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConversationNotFound
	}

	s.mu.Lock()
	if s.currentId == convId {
		// Fall back to the first remaining conversation, or none.
		s.currentId = uuid.Nil
		if remaining := s.repo.List(ctx); len(remaining) > 0 {
			s.currentId = remaining[0].Id
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *chatService) Send(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && len(req.Attachments) == 0 {
		return nil, ErrEmptyMessage
	}

	// Settings are snapshotted here; saves during the turn do not affect it.
	settings := s.settings.Get()

	provider, err := s.newProvider(settings.Provider, s.apiKey)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrTurnInProgress
	}
	targetId := s.currentId
	s.inFlight = true
	s.streamingContent = ""
	s.mu.Unlock()

	conv, err := s.resolveTarget(ctx, targetId, text, settings.Provider)
	if err != nil {
		s.clearTurn()
		return nil, err
	}

	// History excludes the message being sent.
	history := make([]llm.Message, len(conv.Messages))
	for i, m := range conv.Messages {
		history[i] = llm.Message{Role: m.Role, Content: m.Content}
	}

	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleUser,
		Content:   text,
		CreatedAt: time.Now(),
	}
	for _, att := range req.Attachments {
		userMsg.Attachments = append(userMsg.Attachments, entity.Attachment{
			Name:     att.Name,
			MimeType: att.MimeType,
			Data:     att.Data,
		})
	}
	if err := s.repo.AppendMessage(ctx, conv.Id, userMsg); err != nil {
		s.logger.Error("chat", "failed to persist user message", map[string]interface{}{"error": err.Error()})
	}

	s.mu.Lock()
	s.currentId = conv.Id
	s.mu.Unlock()

	chatReq := &llm.ChatRequest{
		Model:             settings.Model,
		SystemInstruction: settings.SystemInstruction,
		Temperature:       settings.Temperature,
		EnableThinking:    settings.EnableThinking,
		ThinkingBudget:    settings.ThinkingBudget,
		EnableWebSearch:   settings.EnableWebSearch,
		History:           history,
		Text:              text,
	}
	for _, att := range userMsg.Attachments {
		chatReq.Attachments = append(chatReq.Attachments, llm.Attachment{
			Name:     att.Name,
			MimeType: att.MimeType,
			Data:     att.Data,
		})
	}

	s.presence.TurnStarted()
	go s.consumeTurn(conv.Id, provider, chatReq)

	return &dto.SendChatResponse{
		ConversationId: conv.Id.String(),
		Title:          conv.Title,
		Sent:           true,
	}, nil
}

// resolveTarget finds the conversation a send lands in, creating one when
// nothing is selected. The first message into any conversation derives its
// title, overriding the seed or placeholder title. Later messages never
// retitle.
func (s *chatService) resolveTarget(ctx context.Context, targetId uuid.UUID, text, provider string) (*entity.Conversation, error) {
	conv, ok := (*entity.Conversation)(nil), false
	if targetId != uuid.Nil {
		conv, ok = s.repo.Get(ctx, targetId)
	}
	if !ok {
		created, err := s.repo.Create(ctx, seedTitle(text), provider)
		if err != nil {
			return nil, err
		}
		conv = created
	}

	if len(conv.Messages) == 0 && text != "" {
		title := deriveTitle(text)
		if title != conv.Title {
			if _, err := s.repo.SetTitle(ctx, conv.Id, title); err != nil {
				return nil, err
			}
			conv.Title = title
		}
	}
	return conv, nil
}

func (s *chatService) State() dto.ChatStateDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := dto.ChatStateDTO{
		IsLoading:        s.inFlight,
		StreamingContent: s.streamingContent,
		Mood:             s.presence.Current(),
	}
	if s.currentId != uuid.Nil {
		state.CurrentConversationId = s.currentId.String()
	}
	return state
}

func (s *chatService) Models() []constant.ModelOption {
	return constant.GeminiModels
}

// consumeTurn drains the provider stream. It deliberately uses a background
// context, a turn keeps running after the triggering request returns.
func (s *chatService) consumeTurn(convId uuid.UUID, provider llm.ChatProvider, req *llm.ChatRequest) {
	events, err := provider.StreamChat(context.Background(), req)
	if err != nil {
		s.failTurn(convId, err)
		return
	}

	for ev := range events {
		switch {
		case ev.Err != nil:
			s.failTurn(convId, ev.Err)
			return
		case ev.Done:
			s.finalizeTurn(convId, ev.Text, ev.Sources)
			return
		default:
			s.mu.Lock()
			s.streamingContent = ev.Text
			s.mu.Unlock()

			s.presence.ChunkReceived()
			s.publisher.PublishTurnEvent(&dto.TurnEvent{
				Type:           dto.TurnEventChunk,
				ConversationId: convId.String(),
				Content:        ev.Text,
				Mood:           s.presence.Current(),
			})
		}
	}

	// A closed channel without a terminal event is a provider bug, treat it
	// as an unknown failure so the session never wedges.
	s.failTurn(convId, llm.WrapUnknown(nil))
}

func (s *chatService) finalizeTurn(convId uuid.UUID, content string, sources []llm.GroundingSource) {
	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleModel,
		Content:   content,
		CreatedAt: time.Now(),
	}
	for _, src := range sources {
		msg.GroundingSources = append(msg.GroundingSources, entity.GroundingSource{
			Title: src.Title,
			URI:   src.URI,
		})
	}
	if err := s.repo.AppendMessage(context.Background(), convId, msg); err != nil {
		s.logger.Error("chat", "failed to persist model message", map[string]interface{}{"error": err.Error()})
	}

	s.clearTurn()
	s.presence.TurnFinalized()

	s.publisher.PublishTurnEvent(&dto.TurnEvent{
		Type:           dto.TurnEventDone,
		ConversationId: convId.String(),
		Content:        content,
		Message:        messageToDTO(msg),
		Mood:           s.presence.Current(),
	})
}

func (s *chatService) failTurn(convId uuid.UUID, cause error) {
	wrapped := llm.WrapUnknown(cause)
	s.logger.Error("chat", "turn failed", map[string]interface{}{
		"conversation_id": convId.String(),
		"error":           wrapped.Error(),
	})

	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleModel,
		Content:   constant.ErrorNoticePrefix + wrapped.Error(),
		CreatedAt: time.Now(),
	}
	if err := s.repo.AppendMessage(context.Background(), convId, msg); err != nil {
		s.logger.Error("chat", "failed to persist failure notice", map[string]interface{}{"error": err.Error()})
	}

	s.clearTurn()
	s.presence.TurnFailed()

	s.publisher.PublishTurnEvent(&dto.TurnEvent{
		Type:           dto.TurnEventError,
		ConversationId: convId.String(),
		Content:        wrapped.Error(),
		Message:        messageToDTO(msg),
		Mood:           s.presence.Current(),
	})
}

func (s *chatService) clearTurn() {
	s.mu.Lock()
	s.inFlight = false
	s.streamingContent = ""
	s.mu.Unlock()
}

func conversationToDTO(c *entity.Conversation) *dto.ConversationDTO {
	out := &dto.ConversationDTO{
		Id:        c.Id.String(),
		Title:     c.Title,
		Provider:  c.Provider,
		Messages:  make([]dto.MessageDTO, len(c.Messages)),
		CreatedAt: c.CreatedAt.UnixMilli(),
		UpdatedAt: c.UpdatedAt.UnixMilli(),
	}
	for i, m := range c.Messages {
		out.Messages[i] = *messageToDTO(m)
	}
	return out
}

func messageToDTO(m *entity.ChatMessage) *dto.MessageDTO {
	out := &dto.MessageDTO{
		Id:        m.Id.String(),
		Role:      m.Role,
		Content:   m.Content,
		Timestamp: m.CreatedAt.UnixMilli(),
	}
	for _, att := range m.Attachments {
		out.Attachments = append(out.Attachments, dto.AttachmentDTO{
			Name:     att.Name,
			MimeType: att.MimeType,
			Data:     att.Data,
		})
	}
	for _, src := range m.GroundingSources {
		out.GroundingSources = append(out.GroundingSources, dto.GroundingSourceDTO{
			Title: src.Title,
			URI:   src.URI,
		})
	}
	return out
}
