package llm

import "context"

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

// Message is one prior turn replayed as conversation history.
type Message struct {
	Role    string
	Content string
}

// Attachment carries a file as a base64 data URI.
type Attachment struct {
	Name     string
	MimeType string
	Data     string
}

type GroundingSource struct {
	Title string
	URI   string
}

// ChatRequest describes one streaming turn. History holds the prior
// messages only, the message being sent goes in Text and Attachments.
type ChatRequest struct {
	Model             string
	SystemInstruction string
	Temperature       float64
	EnableThinking    bool
	ThinkingBudget    int
	EnableWebSearch   bool
	History           []Message
	Text              string
	Attachments       []Attachment
}

// Event is one item on a turn's stream. Text is cumulative: each event
// carries the full response so far. Exactly one terminal event (Done or Err
// set) is emitted, then the channel closes.
type Event struct {
	Text    string
	Sources []GroundingSource
	Done    bool
	Err     error
}

// ChatProvider is the contract every chat backend implements.
type ChatProvider interface {
	StreamChat(ctx context.Context, req *ChatRequest) (<-chan Event, error)
}
