package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	ProviderGemini = "gemini"

	// Title seeded when a conversation is created implicitly by a send.
	DefaultConversationTitle = "New Chat"
	// Title for conversations created by the explicit "new chat" action.
	NewConversationTitle = "New Conversation"

	TitleSeedMaxRunes = 30
	TitleMaxRunes     = 40
	TitleEllipsis     = "..."

	// Failed turns surface as a model message carrying this marker.
	ErrorNoticePrefix = "**System Alert:** "
)

const (
	MoodIdle      = "idle"
	MoodListening = "listening"
	MoodThinking  = "thinking"
	MoodHappy     = "happy"
	MoodSad       = "sad"
)

const (
	DefaultModel             = "gemini-2.5-flash"
	DefaultTemperature       = 0.7
	DefaultUserName          = "User"
	DefaultSystemInstruction = "You are NeURAX AI, a sophisticated, highly intelligent assistant. Use Markdown for formatting."
)
