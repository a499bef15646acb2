package model

// Persisted document shapes. These mirror the browser client's storage format:
// two independent JSON documents, written in full on every mutation
// (last-writer-wins, no merge). Timestamps are milliseconds since epoch.

type SettingsDocument struct {
	Provider          string  `json:"provider"`
	Model             string  `json:"model"`
	Temperature       float64 `json:"temperature"`
	EnableThinking    bool    `json:"enableThinking"`
	ThinkingBudget    int     `json:"thinkingBudget"`
	EnableWebSearch   bool    `json:"enableWebSearch"`
	SystemInstruction string  `json:"systemInstruction,omitempty"`
	UserName          string  `json:"userName,omitempty"`
}

type AttachmentDocument struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GroundingSourceDocument struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type MessageDocument struct {
	Id               string                    `json:"id"`
	Role             string                    `json:"role"`
	Content          string                    `json:"content"`
	Timestamp        int64                     `json:"timestamp"`
	Attachments      []AttachmentDocument      `json:"attachments,omitempty"`
	GroundingSources []GroundingSourceDocument `json:"groundingSources,omitempty"`
}

type ConversationDocument struct {
	Id        string            `json:"id"`
	Title     string            `json:"title"`
	Messages  []MessageDocument `json:"messages"`
	CreatedAt int64             `json:"createdAt"`
	UpdatedAt int64             `json:"updatedAt"`
	Provider  string            `json:"provider"`
}
