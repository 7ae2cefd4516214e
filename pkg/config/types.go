package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Config represents the persistent duet configuration stored as config.toml
// in the .duet/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Chat    ChatConfig   `toml:"chat"`
	LLM     LLMConfig    `toml:"llm"`
	Output  OutputConfig `toml:"output"`
}

// ChatConfig holds the relay parameters: who talks, about what, and for how long.
type ChatConfig struct {
	Model1           string  `toml:"model1,omitempty"`
	Model2           string  `toml:"model2,omitempty"`
	Topic            string  `toml:"topic,omitempty"`
	Rounds           int     `toml:"rounds"`
	Delay            float64 `toml:"delay"`
	ContinueSessions bool    `toml:"continue_sessions"`
}

// ValidateDelay rejects a NaN or infinite delay.
func ValidateDelay(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("invalid delay %v: must be a finite number of seconds", seconds)
	}
	return nil
}

// DelayDuration converts Delay to a time.Duration. Values that do not fit
// saturate at the largest duration; NaN and non-positive values are zero.
func (c ChatConfig) DelayDuration() time.Duration {
	if math.IsNaN(c.Delay) || c.Delay <= 0 {
		return 0
	}

	ns := c.Delay * float64(time.Second)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

// LLMConfig describes how the external model tool is executed:
//
//	<command> [extra_args...] <model_flag> <model> [<session_flag> <id>]
type LLMConfig struct {
	Command     string   `toml:"command,omitempty"`
	ModelFlag   string   `toml:"model_flag,omitempty"`
	SessionFlag string   `toml:"session_flag,omitempty"`
	ExtraArgs   []string `toml:"extra_args,omitempty"`
}

// OutputConfig holds transcript rendering settings.
type OutputConfig struct {
	Markdown bool `toml:"markdown"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"chat.model1": {
		get: func(c *Config) string { return c.Chat.Model1 },
		set: func(c *Config, v string) error { c.Chat.Model1 = v; return nil },
	},
	"chat.model2": {
		get: func(c *Config) string { return c.Chat.Model2 },
		set: func(c *Config, v string) error { c.Chat.Model2 = v; return nil },
	},
	"chat.topic": {
		get: func(c *Config) string { return c.Chat.Topic },
		set: func(c *Config, v string) error { c.Chat.Topic = v; return nil },
	},
	"chat.rounds": {
		get: func(c *Config) string { return strconv.Itoa(c.Chat.Rounds) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for chat.rounds: %w", err)
			}
			c.Chat.Rounds = n
			return nil
		},
	},
	"chat.delay": {
		get: func(c *Config) string { return strconv.FormatFloat(c.Chat.Delay, 'f', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for chat.delay: %w", err)
			}
			if err := ValidateDelay(f); err != nil {
				return fmt.Errorf("invalid value for chat.delay: %w", err)
			}
			c.Chat.Delay = f
			return nil
		},
	},
	"chat.continue_sessions": {
		get: func(c *Config) string { return strconv.FormatBool(c.Chat.ContinueSessions) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for chat.continue_sessions: %w", err)
			}
			c.Chat.ContinueSessions = b
			return nil
		},
	},
	"llm.command": {
		get: func(c *Config) string { return c.LLM.Command },
		set: func(c *Config, v string) error { c.LLM.Command = v; return nil },
	},
	"llm.model_flag": {
		get: func(c *Config) string { return c.LLM.ModelFlag },
		set: func(c *Config, v string) error { c.LLM.ModelFlag = v; return nil },
	},
	"llm.session_flag": {
		get: func(c *Config) string { return c.LLM.SessionFlag },
		set: func(c *Config, v string) error { c.LLM.SessionFlag = v; return nil },
	},
	"llm.extra_args": {
		get: func(c *Config) string { return strings.Join(c.LLM.ExtraArgs, " ") },
		set: func(c *Config, v string) error { c.LLM.ExtraArgs = strings.Fields(v); return nil },
	},
	"output.markdown": {
		get: func(c *Config) string { return strconv.FormatBool(c.Output.Markdown) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for output.markdown: %w", err)
			}
			c.Output.Markdown = b
			return nil
		},
	},
}
