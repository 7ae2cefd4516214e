package configcmder

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/duet/pkg/cliui"
	"github.com/papercomputeco/duet/pkg/config"
)

const setLongDesc string = `Set a configuration value.

Sets the given key to the provided value in the config.toml file
stored in the .duet/ directory. Run "duet init" first, or pass
--config-dir, so there is a directory to write to.

List values (llm.extra_args) are given as one space separated string.

Examples:
  duet config set chat.model2 gpt-4o
  duet config set chat.delay 0.5
  duet config set llm.command claude
  duet config set llm.extra_args "--print --verbose"`

const setShortDesc string = "Set a configuration value"

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: setShortDesc,
		Long:  setLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runSet(cmd.OutOrStdout(), args[0], args[1], configDir)
		},
		ValidArgsFunction: validKeysArg,
	}

	return cmd
}

func runSet(w io.Writer, key, value, configDir string) error {
	if !config.IsValidConfigKey(key) {
		return unknownKeyError(key)
	}

	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	target := cfger.GetTarget()
	if target == "" {
		return errors.New("no .duet directory found: run \"duet init\" or pass --config-dir")
	}
	printTarget(w, target)

	if err := cfger.SetConfigValue(key, value); err != nil {
		return err
	}

	styles := cliui.NewStyles(w)
	fmt.Fprintf(w, "  %s Set %s = %s\n\n",
		styles.SuccessMark(),
		styles.Key.Render(key),
		styles.Value.Render(value),
	)
	return nil
}
