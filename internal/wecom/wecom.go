package wecom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pfrederiksen/daily60s/internal/logger"
	"github.com/pfrederiksen/daily60s/internal/message"
)

const (
	timeout     = 30 * time.Second
	msgTypeMDv2 = "markdown_v2"
)

// WebhookError is a response with a non-zero errcode.
type WebhookError struct {
	ErrCode int
	ErrMsg  string
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("wecom API error (errcode %d): %s", e.ErrCode, e.ErrMsg)
}

// Client posts messages to one webhook URL
type Client struct {
	webhookURL string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a webhook client. A zero timeout uses the 30s default;
// a nil logger uses the package default.
func NewClient(webhookURL string, reqTimeout time.Duration, log *logger.Logger) (*Client, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("webhook URL is required")
	}
	if reqTimeout <= 0 {
		reqTimeout = timeout
	}
	if log == nil {
		log = logger.Default()
	}

	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: reqTimeout,
		},
		log: log,
	}, nil
}

type markdownPayload struct {
	MsgType    string          `json:"msgtype"`
	MarkdownV2 markdownContent `json:"markdown_v2"`
}

type markdownContent struct {
	Content string `json:"content"`
}

// Send posts content as a markdown_v2 message
func (c *Client) Send(ctx context.Context, content string) error {
	if content == "" {
		return fmt.Errorf("message content is required")
	}

	if fitted, optimized := message.Fit(content); optimized {
		c.log.Warn("message exceeds soft limit, optimizing", logger.Fields{
			"length": message.Length(content),
			"limit":  message.SoftLimit,
		})
		content = fitted
		c.log.Info("message optimized", logger.Fields{"length": message.Length(content)})
	}

	jsonData, err := json.Marshal(markdownPayload{
		MsgType:    msgTypeMDv2,
		MarkdownV2: markdownContent{Content: content},
	})
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("sending message to webhook", logger.Fields{"length": message.Length(content)})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug("webhook responded", logger.Fields{
		"status": resp.StatusCode,
		"body":   string(body),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("wecom API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		ErrCode *int   `json:"errcode"`
		ErrMsg  string `json:"errmsg"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if result.ErrCode == nil {
		return &WebhookError{ErrCode: -1, ErrMsg: "response has no errcode: " + string(body)}
	}
	if *result.ErrCode != 0 {
		return &WebhookError{ErrCode: *result.ErrCode, ErrMsg: result.ErrMsg}
	}

	return nil
}
