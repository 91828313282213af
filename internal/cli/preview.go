package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/daily60s/internal/runner"
)

var (
	flagFormat   string
	flagCombined bool
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Fetch today's feeds and print the rendered messages",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagCombined, "combined", false, "Join both messages into a single document")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	// Validate format
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() // nolint:errcheck

	msgs, err := runner.New(newFeedClient(cfg), nil, log).Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching feeds: %w", err)
	}

	if err := WritePreview(cmd.OutOrStdout(), NewPreviewResult(msgs, flagCombined), format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
