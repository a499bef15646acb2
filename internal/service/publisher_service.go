package service

import (
	"context"
	"encoding/json"
	"time"

	"neurax-chat-be/internal/dto"
	"neurax-chat-be/internal/pkg/logger"
	"neurax-chat-be/pkg/events"

	natspkg "neurax-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishTurnEvent(event *dto.TurnEvent)
}

// publisherService pushes turn events onto the in-process bus. Terminal
// events are additionally mirrored to NATS when a publisher is configured,
// so external consumers can react to finished turns.
type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	nats      *natspkg.Publisher
	logger    logger.ILogger
}

func NewPublisherService(
	pubSub *gochannel.GoChannel,
	topicName string,
	nats *natspkg.Publisher,
	log logger.ILogger,
) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
		nats:      nats,
		logger:    log,
	}
}

func (s *publisherService) PublishTurnEvent(event *dto.TurnEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("publisher", "failed to marshal turn event", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Error("publisher", "failed to publish turn event", map[string]interface{}{"error": err.Error()})
	}

	if s.nats == nil {
		return
	}

	switch event.Type {
	case dto.TurnEventDone:
		s.publishNats(events.NewTurnCompletedEvent(event.ConversationId, "", len(event.Content)))
	case dto.TurnEventError:
		s.publishNats(events.NewTurnFailedEvent(event.ConversationId, event.Content))
	}
}

func (s *publisherService) publishNats(event events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.nats.Publish(ctx, event); err != nil {
		s.logger.Warn("publisher", "failed to mirror event to NATS", map[string]interface{}{"error": err.Error()})
	}
}
