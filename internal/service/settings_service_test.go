package service

import (
	"context"
	"testing"

	"neurax-chat-be/internal/constant"
	"neurax-chat-be/internal/entity"
	"neurax-chat-be/internal/mapper"
	"neurax-chat-be/internal/model"
	"neurax-chat-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsFixture() (ISettingsService, *memoryDocumentStore, IPresenceService) {
	store := &memoryDocumentStore{}
	presence := NewPresenceService(memory.NewPresenceRepository())
	svc := NewSettingsService(store, mapper.NewChatMapper(), presence, noopLogger{})
	return svc, store, presence
}

func TestSettingsDefaultsWhenNothingSaved(t *testing.T) {
	svc, _, _ := newSettingsFixture()
	require.NoError(t, svc.Load(context.Background()))

	got := svc.Get()
	assert.Equal(t, constant.ProviderGemini, got.Provider)
	assert.Equal(t, constant.DefaultModel, got.Model)
	assert.Equal(t, constant.DefaultTemperature, got.Temperature)
	assert.Equal(t, constant.DefaultSystemInstruction, got.SystemInstruction)
	assert.Equal(t, constant.DefaultUserName, got.UserName)
	assert.False(t, got.EnableThinking)
	assert.False(t, got.EnableWebSearch)
}

func TestSettingsLoadReplacesDefaults(t *testing.T) {
	svc, store, _ := newSettingsFixture()
	store.settings = &model.SettingsDocument{
		Provider:        "gemini",
		Model:           "gemini-3-pro-preview",
		Temperature:     1.2,
		EnableThinking:  true,
		ThinkingBudget:  2048,
		EnableWebSearch: true,
		UserName:        "Grace",
	}

	require.NoError(t, svc.Load(context.Background()))

	got := svc.Get()
	assert.Equal(t, "gemini-3-pro-preview", got.Model)
	assert.Equal(t, 1.2, got.Temperature)
	assert.True(t, got.EnableThinking)
	assert.Equal(t, 2048, got.ThinkingBudget)
	assert.Equal(t, "Grace", got.UserName)
}

func TestSettingsSaveReplacesWholeObjectAndPersists(t *testing.T) {
	svc, store, presence := newSettingsFixture()

	next := entity.AppSettings{
		Provider:    constant.ProviderGemini,
		Model:       "gemini-2.5-flash-lite-latest",
		Temperature: 0.2,
		UserName:    "Linus",
	}
	require.NoError(t, svc.Save(context.Background(), next))

	assert.Equal(t, next, svc.Get())

	require.NotNil(t, store.settings)
	assert.Equal(t, "gemini-2.5-flash-lite-latest", store.settings.Model)
	// Whole-object replace: fields not set go back to zero values.
	assert.Empty(t, store.settings.SystemInstruction)

	assert.Equal(t, constant.MoodHappy, presence.Current())
}
