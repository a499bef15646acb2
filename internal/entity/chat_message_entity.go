package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once appended to a conversation; the in-flight
// streaming preview is tracked separately and never mutates a stored message.
type ChatMessage struct {
	Id               uuid.UUID
	Role             string
	Content          string
	CreatedAt        time.Time
	Attachments      []Attachment
	GroundingSources []GroundingSource
}

type Attachment struct {
	Name     string
	MimeType string
	Data     string // data URI (base64)
}

type GroundingSource struct {
	Title string
	URI   string
}
