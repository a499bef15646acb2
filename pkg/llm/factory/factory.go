package factory

import (
	"neurax-chat-be/pkg/llm"
	"neurax-chat-be/pkg/llm/gemini"
)

// NewChatProvider resolves a provider id to an implementation. Dispatch is a
// plain switch: new backends are added as cases, not by inheritance.
func NewChatProvider(providerType, apiKey string) (llm.ChatProvider, error) {
	switch providerType {
	case "gemini":
		return gemini.NewProvider(apiKey), nil
	default:
		return nil, &llm.UnsupportedProviderError{Provider: providerType}
	}
}
