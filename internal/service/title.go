package service

import (
	"strings"

	"neurax-chat-be/internal/constant"
)

// seedTitle picks the initial title for a conversation created implicitly by
// a send: the first runes of the message text, or the default when the text
// is blank.
func seedTitle(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return constant.DefaultConversationTitle
	}
	runes := []rune(trimmed)
	if len(runes) > constant.TitleSeedMaxRunes {
		runes = runes[:constant.TitleSeedMaxRunes]
	}
	return string(runes)
}

// deriveTitle produces the display title for a conversation's first user
// message, truncated with an ellipsis only when the text is actually longer.
func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= constant.TitleMaxRunes {
		return text
	}
	return string(runes[:constant.TitleMaxRunes]) + constant.TitleEllipsis
}
