package config

const (
	defaultModel  = "claude-4-sonnet"
	defaultTopic  = "Tell me an interesting fact about space."
	defaultRounds = 5
	defaultDelay  = 1.0

	defaultCommand     = "llm"
	defaultModelFlag   = "-m"
	defaultSessionFlag = "-c"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Chat: ChatConfig{
			Model1: defaultModel,
			Model2: defaultModel,
			Topic:  defaultTopic,
			Rounds: defaultRounds,
			Delay:  defaultDelay,
		},
		LLM: LLMConfig{
			Command:     defaultCommand,
			ModelFlag:   defaultModelFlag,
			SessionFlag: defaultSessionFlag,
		},
	}
}
