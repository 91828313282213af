package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/daily60s/internal/config"
	"github.com/pfrederiksen/daily60s/internal/feed"
	"github.com/pfrederiksen/daily60s/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig    string
	flagVerbose   bool
	flagLogFormat string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily60s",
		Short: "Push the daily 60s news digest to a WeCom group bot",
		Long: `A CLI tool that fetches the daily "60 seconds" news digest, today's
historical events and the current Epic free games, renders them as
markdown and posts them to a WeCom group-bot webhook.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (or env: "+config.EnvConfigPath+")")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: json or console (overrides log.format)")

	cmd.AddCommand(newSendCmd(), newPreviewCmd(), newConfigCmd())

	return cmd
}

// setup loads the configuration and installs a run-scoped logger writing to
// the command's stderr.
func setup(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	level := logger.ParseLevel(cfg.Log.Level)
	if flagVerbose {
		level = logger.LevelDebug
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if flagLogFormat != "" {
		format = strings.ToLower(strings.TrimSpace(flagLogFormat))
		if format != logger.FormatJSON && format != logger.FormatConsole {
			return nil, nil, fmt.Errorf("invalid log format: %s (must be 'json' or 'console')", flagLogFormat)
		}
	}

	log := logger.New(level, format, cmd.ErrOrStderr()).With(logger.Fields{
		"run_id":  uuid.NewString(),
		"command": cmd.Name(),
	})
	logger.SetDefault(log)

	return cfg, log, nil
}

func newFeedClient(cfg *config.Config) *feed.Client {
	return feed.New(cfg.API.BaseURL, cfg.API.Timeout, cfg.API.UserAgent)
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
