package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/daily60s/internal/config"
)

var flagForce bool

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file (default ./" + config.LocalConfigFile + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.LocalConfigFile
	if len(args) == 1 {
		path = args[0]
	}

	if !flagForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	cfg, err := config.Default()
	if err != nil {
		return err
	}

	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Set webhook.key before running send.\n")
	return nil
}
