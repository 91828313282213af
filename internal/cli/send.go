package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/daily60s/internal/config"
	"github.com/pfrederiksen/daily60s/internal/logger"
	"github.com/pfrederiksen/daily60s/internal/notifier"
	"github.com/pfrederiksen/daily60s/internal/runner"
	"github.com/pfrederiksen/daily60s/internal/wecom"
)

var (
	flagWebhookKey string
	flagDryRun     bool
	flagTwitter    bool
)

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Fetch today's feeds and post both messages to the webhook",
		Long: `Fetch the digest, today's history and the Epic free games, render the
main and history messages and post them to the WeCom webhook.

While the webhook key is unset or still the placeholder the messages are
printed instead of sent.`,
		Args: cobra.NoArgs,
		RunE: runSend,
	}

	cmd.Flags().StringVar(&flagWebhookKey, "webhook-key", "", "Webhook key (overrides webhook.key)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print messages without posting")
	cmd.Flags().BoolVar(&flagTwitter, "twitter", false, "Also post a summary of each message to Twitter")

	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() // nolint:errcheck

	if flagWebhookKey != "" {
		cfg.Webhook.Key = flagWebhookKey
	}

	n, err := buildNotifier(cmd, cfg, log)
	if err != nil {
		return err
	}

	result, err := runner.New(newFeedClient(cfg), n, log).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching feeds: %w", err)
	}

	log.Debug("run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})

	if err := WriteSummary(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if err := result.Err(); err != nil {
		return fmt.Errorf("delivery failed: %w", err)
	}
	return nil
}

// buildNotifier picks the delivery channels for this run. A missing or
// placeholder webhook key turns the run into a dry run.
func buildNotifier(cmd *cobra.Command, cfg *config.Config, log *logger.Logger) (notifier.Notifier, error) {
	dryRun := flagDryRun
	if !dryRun && !cfg.Webhook.HasWebhookKey() {
		log.Warn("webhook key not configured, printing messages instead of sending", logger.Fields{
			"hint": "set webhook.key in the config file or DAILY60S_WEBHOOK_KEY",
		})
		dryRun = true
	}

	if dryRun {
		if flagTwitter || cfg.Twitter.Enabled {
			log.Info("dry run, skipping twitter", nil)
		}
		return notifier.NewDryRunNotifier(cmd.OutOrStdout()), nil
	}

	client, err := wecom.NewClient(cfg.Webhook.URL(), cfg.Webhook.Timeout, log)
	if err != nil {
		return nil, fmt.Errorf("creating webhook client: %w", err)
	}
	multi := notifier.Multi{notifier.NewWeComNotifier(client)}

	if flagTwitter || cfg.Twitter.Enabled {
		tw, err := notifier.NewTwitterNotifier()
		if err != nil {
			return nil, fmt.Errorf("initializing twitter: %w", err)
		}
		multi = append(multi, tw)
	}

	return multi, nil
}
