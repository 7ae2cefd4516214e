// Package initcmder provides the init command for initializing a local .duet
// directory in the current working directory.
package initcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/duet/pkg/cliui"
	"github.com/papercomputeco/duet/pkg/config"
	"github.com/papercomputeco/duet/pkg/dotdir"
)

const initLongDesc string = `Initialize a new .duet/ directory in the current working directory.

Creates a local .duet/ directory that takes precedence over the default
~/.duet/ directory, and writes a config.toml with default values unless
one already exists.

Use --preset to write a config.toml tuned for a specific model tool,
replacing any existing one. A preset is either a built-in name or an
http(s) URL serving a config.toml.

Built-in presets:
  llm      Simon Willison's llm tool (llm -m <model> [-c <id>])
  claude   Claude Code in print mode (claude --print --model <model>)

Examples:
  duet init
  duet init --preset claude
  duet init --preset https://example.com/duet/config.toml`

const initShortDesc string = "Initialize a local .duet/ directory"

const remoteFetchTimeout = 10 * time.Second

type initCommander struct {
	preset string
}

func NewInitCmd() *cobra.Command {
	cmder := &initCommander{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cmder.preset, "preset", "",
		fmt.Sprintf("Config preset (%s) or URL to a config.toml", strings.Join(config.ValidPresetNames(), ", ")))

	return cmd
}

func (c *initCommander) run(ctx context.Context, w io.Writer) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dotdir.DirName)

	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		fmt.Fprintf(w, "Already initialized: %s\n", dir)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating .duet directory: %w", err)
		}
		fmt.Fprintf(w, "Initialized .duet directory: %s\n", dir)
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if c.preset == "" {
		return writeDefaults(w, cfger)
	}

	cfg, err := c.resolvePreset(ctx)
	if err != nil {
		return err
	}

	if err := cfger.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Wrote %s preset to %s\n", cliui.NewStyles(w).SuccessMark(), c.preset, cfger.GetTarget())
	return nil
}

func writeDefaults(w io.Writer, cfger *config.Configer) error {
	_, err := os.Stat(cfger.GetTarget())
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := cfger.SaveConfig(config.NewDefaultConfig()); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Wrote default config to %s\n", cliui.NewStyles(w).SuccessMark(), cfger.GetTarget())
	return nil
}

func (c *initCommander) resolvePreset(ctx context.Context) (*config.Config, error) {
	if strings.HasPrefix(c.preset, "http://") || strings.HasPrefix(c.preset, "https://") {
		return fetchRemoteConfig(ctx, c.preset)
	}
	return config.PresetConfig(c.preset)
}

func fetchRemoteConfig(ctx context.Context, url string) (*config.Config, error) {
	ctx, cancel := context.WithTimeout(ctx, remoteFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching remote config: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading remote config: %w", err)
	}

	cfg, err := config.ParseConfigTOML(data)
	if err != nil {
		return nil, fmt.Errorf("parsing remote config: %w", err)
	}

	return cfg, nil
}
