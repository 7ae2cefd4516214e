// Package configcmder provides the config command for managing persistent
// duet configuration stored in the .duet/ directory.
package configcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/duet/pkg/cliui"
	"github.com/papercomputeco/duet/pkg/config"
)

const configLongDesc string = `Manage persistent duet configuration.

Configuration is stored as config.toml in the .duet/ directory and provides
default values for command flags. CLI flags and DUET_* environment variables
take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  chat.model1, chat.model2, chat.topic, chat.rounds, chat.delay,
  chat.continue_sessions,
  llm.command, llm.model_flag, llm.session_flag, llm.extra_args,
  output.markdown

Use subcommands to get, set, or list configuration values:
  duet config set <key> <value>    Set a configuration value
  duet config get <key>            Get a configuration value
  duet config list                 List all configuration values

Examples:
  duet config set chat.model1 gpt-4o
  duet config set chat.rounds 3
  duet config get llm.command
  duet config list`

const configShortDesc string = "Manage persistent duet configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func validKeysArg(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
		key, strings.Join(config.ValidConfigKeys(), ", "))
}

func printTarget(w io.Writer, target string) {
	styles := cliui.NewStyles(w)
	if target != "" {
		fmt.Fprintf(w, "\n  %s %s\n\n",
			styles.Key.Render("Config file:"),
			styles.Dim.Render(target),
		)
		return
	}
	fmt.Fprintf(w, "\n  %s\n\n", styles.Dim.Render("No config file found. Using defaults."))
}
