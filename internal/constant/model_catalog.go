package constant

// ModelOption describes one selectable backend model for the settings editor.
type ModelOption struct {
	Id               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	SupportsThinking bool   `json:"supports_thinking"`
	SupportsImages   bool   `json:"supports_images"`
}

// GeminiModels is the read-only catalog served to the settings editor.
var GeminiModels = []ModelOption{
	{
		Id:             "gemini-2.5-flash",
		Name:           "Gemini 2.5 Flash",
		Description:    "Balanced speed and intelligence.",
		SupportsImages: true,
	},
	{
		Id:             "gemini-2.5-flash-lite-latest",
		Name:           "Gemini 2.5 Flash Lite",
		Description:    "Fastest, lightweight tasks.",
		SupportsImages: true,
	},
	{
		Id:               "gemini-3-pro-preview",
		Name:             "Gemini 3.0 Pro",
		Description:      "Maximum reasoning power.",
		SupportsThinking: true,
	},
	{
		Id:               "gemini-2.5-flash-thinking-latest",
		Name:             "Gemini 2.5 Flash Thinking",
		Description:      "Specialized in logic puzzles.",
		SupportsThinking: true,
		SupportsImages:   true,
	},
}
