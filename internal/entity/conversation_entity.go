package entity

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID
	Title     string
	Provider  string
	Messages  []*ChatMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
