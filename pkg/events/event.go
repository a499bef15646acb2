package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TURN_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common fields for concrete events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	EventTypeTurnCompleted = "TURN_COMPLETED"
	EventTypeTurnFailed    = "TURN_FAILED"
)

// NewTurnCompletedEvent is emitted when a model turn finalizes.
func NewTurnCompletedEvent(conversationId, model string, contentLength int) Event {
	return BaseEvent{
		Type: EventTypeTurnCompleted,
		Data: map[string]interface{}{
			"conversation_id": conversationId,
			"model":           model,
			"content_length":  contentLength,
		},
		OccurredAt: time.Now(),
	}
}

// NewTurnFailedEvent is emitted when a model turn ends in an error.
func NewTurnFailedEvent(conversationId, reason string) Event {
	return BaseEvent{
		Type: EventTypeTurnFailed,
		Data: map[string]interface{}{
			"conversation_id": conversationId,
			"reason":          reason,
		},
		OccurredAt: time.Now(),
	}
}
