package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline.
type Flag struct {
	// Name is the long flag name (e.g. "model1").
	Name string

	// Shorthand is the one-letter short flag (e.g. "t"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "chat.model1").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling the Add*Flag helpers and
// BindRegisteredFlags to avoid typos or drift between commands.
const (
	FlagModel1           = "model1"
	FlagModel2           = "model2"
	FlagTopic            = "topic"
	FlagRounds           = "rounds"
	FlagDelay            = "delay"
	FlagContinueSessions = "continue-sessions"
	FlagMarkdown         = "markdown"
	FlagLLMCommand       = "llm-command"
)

// RelayFlags are the flags of the root duet command. -m1 and -m2 are not
// listed as shorthands because pflag only supports single-letter shorthands;
// the CLI rewrites them before parsing.
var RelayFlags = FlagSet{
	FlagModel1:           {Name: "model1", ViperKey: "chat.model1", Description: "Model for the first LLM (-m1)"},
	FlagModel2:           {Name: "model2", ViperKey: "chat.model2", Description: "Model for the second LLM (-m2)"},
	FlagTopic:            {Name: "topic", Shorthand: "t", ViperKey: "chat.topic", Description: "Initial topic/prompt to start the conversation"},
	FlagRounds:           {Name: "rounds", Shorthand: "r", ViperKey: "chat.rounds", Description: "Number of conversation rounds"},
	FlagDelay:            {Name: "delay", Shorthand: "d", ViperKey: "chat.delay", Description: "Delay between responses in seconds"},
	FlagContinueSessions: {Name: "continue-sessions", ViperKey: "chat.continue_sessions", Description: "Give each model its own conversation session for the whole run"},
	FlagMarkdown:         {Name: "markdown", ViperKey: "output.markdown", Description: "Render responses as markdown"},
	FlagLLMCommand:       {Name: "llm-command", ViperKey: "llm.command", Description: "External model tool to execute"},
}

// RelayFlagKeys lists every key in RelayFlags in registration order.
var RelayFlagKeys = []string{
	FlagModel1,
	FlagModel2,
	FlagTopic,
	FlagRounds,
	FlagDelay,
	FlagContinueSessions,
	FlagMarkdown,
	FlagLLMCommand,
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaults().GetString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddIntFlag registers an int flag on cmd from the given FlagSet.
func AddIntFlag(cmd *cobra.Command, fs FlagSet, key string, target *int) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaults().GetInt(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().IntVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().IntVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddFloat64Flag registers a float64 flag on cmd from the given FlagSet.
func AddFloat64Flag(cmd *cobra.Command, fs FlagSet, key string, target *float64) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaults().GetFloat64(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().Float64VarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().Float64Var(target, def.Name, defaultVal, def.Description)
	}
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, key string, target *bool) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaults().GetBool(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().BoolVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaults returns a viper instance holding only NewDefaultConfig values.
func defaults() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	return v
}
