package notifier

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/daily60s/internal/message"
)

const (
	tweetLimit    = 280
	tweetMaxItems = 5
)

var listItemPattern = regexp.MustCompile(`^\d+\.\s+`)

// TwitterNotifier posts a compact summary of each message to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &TwitterNotifier{client: twitter.NewClient(httpClient)}, nil
}

// Notify tweets the summary of msg.
func (n *TwitterNotifier) Notify(_ context.Context, msg Message) error {
	tweet := formatTweet(msg.Content)
	if tweet == "" {
		return nil
	}

	if _, _, err := n.client.Statuses.Update(tweet, nil); err != nil {
		return fmt.Errorf("failed to post tweet for %s message: %w", msg.Kind, err)
	}
	return nil
}

// formatTweet keeps the heading and the first numbered items of a markdown
// message, clipped to the tweet limit.
func formatTweet(content string) string {
	var title string
	var items []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if title == "" && strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			continue
		}
		if listItemPattern.MatchString(line) && len(items) < tweetMaxItems {
			items = append(items, line)
		}
	}

	if title == "" && len(items) == 0 {
		return ""
	}

	tweet := title
	if len(items) > 0 {
		if tweet != "" {
			tweet += "\n\n"
		}
		tweet += strings.Join(items, "\n")
	}

	if message.Length(tweet) > tweetLimit {
		tweet = message.Clip(tweet, tweetLimit-3) + "..."
	}

	return tweet
}
