package notifier

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/daily60s/internal/wecom"
)

// WeComNotifier posts messages to a WeCom group-bot webhook.
type WeComNotifier struct {
	client *wecom.Client
}

// NewWeComNotifier wraps an existing webhook client.
func NewWeComNotifier(client *wecom.Client) *WeComNotifier {
	return &WeComNotifier{client: client}
}

// Notify sends the message through the webhook.
func (n *WeComNotifier) Notify(ctx context.Context, msg Message) error {
	if err := n.client.Send(ctx, msg.Content); err != nil {
		return fmt.Errorf("sending %s message: %w", msg.Kind, err)
	}
	return nil
}
