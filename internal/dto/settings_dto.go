package dto

type SettingsDTO struct {
	Provider          string  `json:"provider" validate:"required"`
	Model             string  `json:"model" validate:"required"`
	Temperature       float64 `json:"temperature" validate:"gte=0,lte=1.5"`
	EnableThinking    bool    `json:"enable_thinking"`
	ThinkingBudget    int     `json:"thinking_budget" validate:"gte=0"`
	EnableWebSearch   bool    `json:"enable_web_search"`
	SystemInstruction string  `json:"system_instruction"`
	UserName          string  `json:"user_name"`
}
