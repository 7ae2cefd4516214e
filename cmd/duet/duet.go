// Package duetcmder provides the root duet command, which relays a
// conversation between two models through an external LLM CLI.
package duetcmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configcmder "github.com/papercomputeco/duet/cmd/duet/config"
	initcmder "github.com/papercomputeco/duet/cmd/duet/init"
	versioncmder "github.com/papercomputeco/duet/cmd/version"
	"github.com/papercomputeco/duet/pkg/cliui"
	"github.com/papercomputeco/duet/pkg/config"
	"github.com/papercomputeco/duet/pkg/invoker"
	"github.com/papercomputeco/duet/pkg/logger"
	"github.com/papercomputeco/duet/pkg/relay"
	"github.com/papercomputeco/duet/pkg/utils"
)

const duetLongDesc string = `Duet has two LLMs chat with each other.

Each model's response becomes the other model's next prompt. Model 1 opens
every round; the conversation ends after --rounds rounds, or as soon as the
model tool fails.

Models are reached through an external CLI (the "llm" tool by default) that
reads the prompt on stdin and writes the response to stdout.

Examples:
  duet
  duet -m1 gpt-4o -m2 claude-4-sonnet --topic "Is a hot dog a sandwich?"
  duet --rounds 3 --delay 0
  duet --llm-command claude --markdown

Manage defaults with:
  duet init           Create a local .duet/ directory
  duet config list    Show the effective configuration`

const duetShortDesc string = "Duet - two LLMs in conversation"

type duetCommander struct {
	debug     bool
	configDir string

	// Flag targets. Effective values are read back through viper so config
	// files and DUET_* variables apply when a flag is not set.
	model1           string
	model2           string
	topic            string
	rounds           int
	delay            float64
	continueSessions bool
	markdown         bool
	llmCommand       string

	cfg    *config.Config
	logger *slog.Logger
}

func NewDuetCmd() *cobra.Command {
	cmder := &duetCommander{}

	cmd := &cobra.Command{
		Use:     "duet",
		Short:   duetShortDesc,
		Long:    duetLongDesc,
		Args:    cobra.NoArgs,
		Version: utils.VersionString(),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.RelayFlags, config.RelayFlagKeys)
			cmder.cfg = config.ConfigFromViper(v)
			return config.ValidateDelay(cmder.cfg.Chat.Delay)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&cmder.configDir, "config-dir", "", "Directory holding config.toml (default: ./.duet or ~/.duet)")

	config.AddStringFlag(cmd, config.RelayFlags, config.FlagModel1, &cmder.model1)
	config.AddStringFlag(cmd, config.RelayFlags, config.FlagModel2, &cmder.model2)
	config.AddStringFlag(cmd, config.RelayFlags, config.FlagTopic, &cmder.topic)
	config.AddIntFlag(cmd, config.RelayFlags, config.FlagRounds, &cmder.rounds)
	config.AddFloat64Flag(cmd, config.RelayFlags, config.FlagDelay, &cmder.delay)
	config.AddBoolFlag(cmd, config.RelayFlags, config.FlagContinueSessions, &cmder.continueSessions)
	config.AddBoolFlag(cmd, config.RelayFlags, config.FlagMarkdown, &cmder.markdown)
	config.AddStringFlag(cmd, config.RelayFlags, config.FlagLLMCommand, &cmder.llmCommand)

	// Add subcommands
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}

func (c *duetCommander) run(ctx context.Context, out, errOut io.Writer) error {
	c.logger = logger.New(
		logger.WithWriter(errOut),
		logger.WithPretty(true),
		logger.WithDebug(c.debug),
	)

	inv := invoker.NewCommandInvoker(
		invoker.WithCommand(c.cfg.LLM.Command),
		invoker.WithModelFlag(c.cfg.LLM.ModelFlag),
		invoker.WithSessionFlag(c.cfg.LLM.SessionFlag),
		invoker.WithExtraArgs(c.cfg.LLM.ExtraArgs...),
		invoker.WithLogger(c.logger),
	)

	opts := []relay.Option{
		relay.WithOutput(out),
		relay.WithLogger(c.logger),
		relay.WithSpinner(isTerminal(out)),
	}
	if c.cfg.Output.Markdown {
		opts = append(opts, relay.WithRenderer(c.renderMarkdown))
	}

	c.logger.Debug("starting relay",
		"command", c.cfg.LLM.Command,
		"model1", c.cfg.Chat.Model1,
		"model2", c.cfg.Chat.Model2,
		"rounds", c.cfg.Chat.Rounds,
		"delay", c.cfg.Chat.Delay,
	)

	result, err := relay.New(inv, relayConfig(c.cfg), opts...).Run(ctx)
	if err != nil {
		return err
	}

	// A failed turn has already been reported; it is not a command error.
	if !result.Completed() {
		c.logger.Debug("relay ended early",
			"round", result.Failure.Round,
			"participant", result.Failure.Participant.String(),
		)
	}

	return nil
}

func (c *duetCommander) renderMarkdown(response string) string {
	rendered, err := cliui.RenderMarkdown(response)
	if err != nil {
		c.logger.Warn("could not render markdown", "error", err)
	}
	return rendered
}

func relayConfig(cfg *config.Config) relay.Config {
	return relay.Config{
		Model1:           cfg.Chat.Model1,
		Model2:           cfg.Chat.Model2,
		Topic:            cfg.Chat.Topic,
		Rounds:           cfg.Chat.Rounds,
		Delay:            cfg.Chat.DelayDuration(),
		ContinueSessions: cfg.Chat.ContinueSessions,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
