package entity

// AppSettings is the persisted, whole-object-replace configuration.
// A read-only snapshot is taken at the moment a turn starts.
type AppSettings struct {
	Provider          string
	Model             string
	Temperature       float64
	EnableThinking    bool
	ThinkingBudget    int
	EnableWebSearch   bool
	SystemInstruction string
	UserName          string
}
