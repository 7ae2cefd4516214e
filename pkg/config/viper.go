package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/duet/pkg/dotdir"
)

// EnvPrefix prefixes every environment variable duet reads.
const EnvPrefix = "DUET"

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the DUET_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (DUET_CHAT_MODEL1, DUET_LLM_COMMAND, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
		if err := v.ReadInConfig(); err != nil {
			// Config file not found errors are fine, defaults will apply.
			if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if version := v.GetInt("version"); version != CurrentV {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", version, CurrentV)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// ConfigFromViper materializes the effective configuration after every
// precedence layer has been applied.
func ConfigFromViper(v *viper.Viper) *Config {
	return &Config{
		Version: v.GetInt("version"),
		Chat: ChatConfig{
			Model1:           v.GetString("chat.model1"),
			Model2:           v.GetString("chat.model2"),
			Topic:            v.GetString("chat.topic"),
			Rounds:           v.GetInt("chat.rounds"),
			Delay:            v.GetFloat64("chat.delay"),
			ContinueSessions: v.GetBool("chat.continue_sessions"),
		},
		LLM: LLMConfig{
			Command:     v.GetString("llm.command"),
			ModelFlag:   v.GetString("llm.model_flag"),
			SessionFlag: v.GetString("llm.session_flag"),
			ExtraArgs:   v.GetStringSlice("llm.extra_args"),
		},
		Output: OutputConfig{
			Markdown: v.GetBool("output.markdown"),
		},
	}
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Chat
	v.SetDefault("chat.model1", d.Chat.Model1)
	v.SetDefault("chat.model2", d.Chat.Model2)
	v.SetDefault("chat.topic", d.Chat.Topic)
	v.SetDefault("chat.rounds", d.Chat.Rounds)
	v.SetDefault("chat.delay", d.Chat.Delay)
	v.SetDefault("chat.continue_sessions", d.Chat.ContinueSessions)

	// LLM tool
	v.SetDefault("llm.command", d.LLM.Command)
	v.SetDefault("llm.model_flag", d.LLM.ModelFlag)
	v.SetDefault("llm.session_flag", d.LLM.SessionFlag)
	v.SetDefault("llm.extra_args", d.LLM.ExtraArgs)

	// Output
	v.SetDefault("output.markdown", d.Output.Markdown)
}
