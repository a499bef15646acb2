package service

import (
	"testing"
	"time"

	"neurax-chat-be/internal/constant"
	"neurax-chat-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
)

func newTestPresenceService(listen bool) *presenceService {
	return &presenceService{
		repo:              memory.NewPresenceRepository(),
		happyFinalizedTTL: 30 * time.Millisecond,
		happyCreatedTTL:   30 * time.Millisecond,
		happySettingsTTL:  30 * time.Millisecond,
		sadTTL:            30 * time.Millisecond,
		listenChance:      func() bool { return listen },
	}
}

func TestPresenceDefaultsToIdle(t *testing.T) {
	svc := newTestPresenceService(false)
	assert.Equal(t, constant.MoodIdle, svc.Current())
}

func TestPresenceTurnLifecycle(t *testing.T) {
	svc := newTestPresenceService(false)

	svc.TurnStarted()
	assert.Equal(t, constant.MoodThinking, svc.Current())

	svc.ChunkReceived()
	assert.Equal(t, constant.MoodThinking, svc.Current())

	svc.TurnFinalized()
	assert.Equal(t, constant.MoodHappy, svc.Current())

	assert.Eventually(t, func() bool {
		return svc.Current() == constant.MoodIdle
	}, time.Second, 10*time.Millisecond, "happy should decay to idle")
}

func TestPresenceChunkCanFlashListening(t *testing.T) {
	svc := newTestPresenceService(true)

	svc.TurnStarted()
	svc.ChunkReceived()
	assert.Equal(t, constant.MoodListening, svc.Current())
}

func TestPresenceFailureTurnsSad(t *testing.T) {
	svc := newTestPresenceService(false)

	svc.TurnStarted()
	svc.TurnFailed()
	assert.Equal(t, constant.MoodSad, svc.Current())

	assert.Eventually(t, func() bool {
		return svc.Current() == constant.MoodIdle
	}, time.Second, 10*time.Millisecond)
}

func TestPresenceHappyOnCreateAndSettings(t *testing.T) {
	svc := newTestPresenceService(false)

	svc.ConversationCreated()
	assert.Equal(t, constant.MoodHappy, svc.Current())

	svc.SettingsSaved()
	assert.Equal(t, constant.MoodHappy, svc.Current())
}
