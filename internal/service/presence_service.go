package service

import (
	"math/rand"
	"time"

	"neurax-chat-be/internal/constant"
	"neurax-chat-be/internal/repository/memory"
)

type IPresenceService interface {
	Current() string
	TurnStarted()
	ChunkReceived()
	TurnFinalized()
	TurnFailed()
	ConversationCreated()
	SettingsSaved()
}

// presenceService drives the companion mood indicator. Transient moods carry
// a TTL and decay back to idle on their own; thinking holds until the turn
// resolves.
type presenceService struct {
	repo *memory.PresenceRepository

	happyFinalizedTTL time.Duration
	happyCreatedTTL   time.Duration
	happySettingsTTL  time.Duration
	sadTTL            time.Duration
	listenChance      func() bool
}

func NewPresenceService(repo *memory.PresenceRepository) IPresenceService {
	return &presenceService{
		repo:              repo,
		happyFinalizedTTL: 3 * time.Second,
		happyCreatedTTL:   2 * time.Second,
		happySettingsTTL:  1500 * time.Millisecond,
		sadTTL:            4 * time.Second,
		listenChance:      func() bool { return rand.Float64() > 0.9 },
	}
}

func (s *presenceService) Current() string {
	return s.repo.Current()
}

func (s *presenceService) TurnStarted() {
	s.repo.Set(constant.MoodThinking, 0)
}

// ChunkReceived occasionally flashes listening so the indicator feels alive
// while a long answer streams. The mood snaps back to thinking on the next
// chunk, and the terminal event overrides it either way.
func (s *presenceService) ChunkReceived() {
	if s.listenChance() {
		s.repo.Set(constant.MoodListening, 0)
	} else {
		s.repo.Set(constant.MoodThinking, 0)
	}
}

func (s *presenceService) TurnFinalized() {
	s.repo.Set(constant.MoodHappy, s.happyFinalizedTTL)
}

func (s *presenceService) TurnFailed() {
	s.repo.Set(constant.MoodSad, s.sadTTL)
}

func (s *presenceService) ConversationCreated() {
	s.repo.Set(constant.MoodHappy, s.happyCreatedTTL)
}

func (s *presenceService) SettingsSaved() {
	s.repo.Set(constant.MoodHappy, s.happySettingsTTL)
}
