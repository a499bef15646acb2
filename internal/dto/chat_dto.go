package dto

type AttachmentDTO struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type GroundingSourceDTO struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type MessageDTO struct {
	Id               string               `json:"id"`
	Role             string               `json:"role"`
	Content          string               `json:"content"`
	Timestamp        int64                `json:"timestamp"`
	Attachments      []AttachmentDTO      `json:"attachments,omitempty"`
	GroundingSources []GroundingSourceDTO `json:"grounding_sources,omitempty"`
}

type ConversationSummaryDTO struct {
	Id           string `json:"id"`
	Title        string `json:"title"`
	Provider     string `json:"provider"`
	MessageCount int    `json:"message_count"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}

type ConversationDTO struct {
	Id        string       `json:"id"`
	Title     string       `json:"title"`
	Provider  string       `json:"provider"`
	Messages  []MessageDTO `json:"messages"`
	CreatedAt int64        `json:"created_at"`
	UpdatedAt int64        `json:"updated_at"`
}

// ChatStateDTO is the snapshot clients poll to render the session.
type ChatStateDTO struct {
	CurrentConversationId string `json:"current_conversation_id,omitempty"`
	IsLoading             bool   `json:"is_loading"`
	StreamingContent      string `json:"streaming_content"`
	Mood                  string `json:"mood"`
}

type SendChatRequest struct {
	Text        string          `json:"text"`
	Attachments []AttachmentDTO `json:"attachments,omitempty"`
}

type SendChatResponse struct {
	ConversationId string `json:"conversation_id"`
	Title          string `json:"title"`
	Sent           bool   `json:"sent"`
}

type RenameConversationRequest struct {
	Title string `json:"title" validate:"required"`
}
