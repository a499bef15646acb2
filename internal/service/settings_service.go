package service

import (
	"context"
	"sync"

	"neurax-chat-be/internal/constant"
	"neurax-chat-be/internal/entity"
	"neurax-chat-be/internal/mapper"
	"neurax-chat-be/internal/pkg/logger"
	"neurax-chat-be/internal/repository/contract"
)

type ISettingsService interface {
	Load(ctx context.Context) error
	Get() entity.AppSettings
	Save(ctx context.Context, settings entity.AppSettings) error
}

// settingsService holds the current settings in memory and writes the whole
// object through on every save.
type settingsService struct {
	mu       sync.RWMutex
	current  entity.AppSettings
	store    contract.DocumentStore
	mapper   *mapper.ChatMapper
	presence IPresenceService
	logger   logger.ILogger
}

func NewSettingsService(
	store contract.DocumentStore,
	m *mapper.ChatMapper,
	presence IPresenceService,
	log logger.ILogger,
) ISettingsService {
	return &settingsService{
		current:  defaultSettings(),
		store:    store,
		mapper:   m,
		presence: presence,
		logger:   log,
	}
}

func defaultSettings() entity.AppSettings {
	return entity.AppSettings{
		Provider:          constant.ProviderGemini,
		Model:             constant.DefaultModel,
		Temperature:       constant.DefaultTemperature,
		EnableThinking:    false,
		ThinkingBudget:    0,
		EnableWebSearch:   false,
		SystemInstruction: constant.DefaultSystemInstruction,
		UserName:          constant.DefaultUserName,
	}
}

// Load pulls the persisted settings document, keeping defaults when none was
// saved yet.
func (s *settingsService) Load(ctx context.Context) error {
	doc, err := s.store.LoadSettings(ctx)
	if err != nil {
		return err
	}
	if doc == nil {
		s.logger.Info("settings", "no saved settings found, using defaults", nil)
		return nil
	}
	s.mu.Lock()
	s.current = s.mapper.SettingsToEntity(doc)
	s.mu.Unlock()
	return nil
}

func (s *settingsService) Get() entity.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *settingsService) Save(ctx context.Context, settings entity.AppSettings) error {
	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()

	if err := s.store.SaveSettings(ctx, s.mapper.SettingsToDocument(&settings)); err != nil {
		return err
	}
	s.presence.SettingsSaved()
	s.logger.Info("settings", "settings saved", map[string]interface{}{
		"provider": settings.Provider,
		"model":    settings.Model,
	})
	return nil
}
