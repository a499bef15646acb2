package dto

const (
	TurnEventChunk = "chunk"
	TurnEventDone  = "done"
	TurnEventError = "error"
)

// TurnEvent is published on the turn-events topic and fanned out to
// websocket clients. Content carries the cumulative text so far for chunk
// events; Message is set only on done events.
type TurnEvent struct {
	Type           string      `json:"type"`
	ConversationId string      `json:"conversation_id"`
	Content        string      `json:"content,omitempty"`
	Message        *MessageDTO `json:"message,omitempty"`
	Mood           string      `json:"mood"`
}
