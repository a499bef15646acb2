package service

import "errors"

var (
	// ErrTurnInProgress is returned when a send arrives while another turn
	// is still streaming. Only one turn may be in flight at a time.
	ErrTurnInProgress = errors.New("a chat turn is already in progress")

	// ErrEmptyMessage is returned when a send carries neither text nor
	// attachments.
	ErrEmptyMessage = errors.New("message text and attachments are both empty")

	ErrConversationNotFound = errors.New("conversation not found")
)
