package wecom

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/daily60s/internal/logger"
	"github.com/pfrederiksen/daily60s/internal/message"
)

type capturedRequest struct {
	Method      string
	ContentType string
	Query       string
	Payload     markdownPayload
}

type recorder struct {
	mu   sync.Mutex
	reqs []capturedRequest
}

func (r *recorder) requests() []capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]capturedRequest(nil), r.reqs...)
}

// newWebhookServer records each request and replies with status and body.
func newWebhookServer(t *testing.T, status int, reply string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := capturedRequest{
			Method:      r.Method,
			ContentType: r.Header.Get("Content-Type"),
			Query:       r.URL.Query().Get("key"),
		}
		if err := json.NewDecoder(r.Body).Decode(&req.Payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, req)
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(reply)) // nolint:errcheck
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func newTestClient(t *testing.T, url string) (*Client, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	c, err := NewClient(url, 0, logger.New(logger.LevelDebug, logger.FormatJSON, &logs))
	require.NoError(t, err)
	return c, &logs
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("", 0, nil)
	assert.Error(t, err)

	c, err := NewClient("https://example.com/send?key=k", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, timeout, c.httpClient.Timeout)
	assert.NotNil(t, c.log)
}

func TestSend_Success(t *testing.T) {
	server, got := newWebhookServer(t, http.StatusOK, `{"errcode":0,"errmsg":"ok"}`)
	c, logs := newTestClient(t, server.URL+"/cgi-bin/webhook/send?key=secret")

	err := c.Send(context.Background(), "# hello\n1. world\n")
	require.NoError(t, err)

	reqs := got.requests()
	require.Len(t, reqs, 1)
	req := reqs[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/json", req.ContentType)
	assert.Equal(t, "secret", req.Query)
	assert.Equal(t, "markdown_v2", req.Payload.MsgType)
	assert.Equal(t, "# hello\n1. world\n", req.Payload.MarkdownV2.Content)

	assert.Contains(t, logs.String(), "webhook responded")
	assert.NotContains(t, logs.String(), "optimizing")
}

func TestSend_ErrCode(t *testing.T) {
	server, _ := newWebhookServer(t, http.StatusOK, `{"errcode":93000,"errmsg":"invalid webhook url"}`)
	c, _ := newTestClient(t, server.URL)

	err := c.Send(context.Background(), "content")
	require.Error(t, err)

	var whErr *WebhookError
	require.ErrorAs(t, err, &whErr)
	assert.Equal(t, 93000, whErr.ErrCode)
	assert.Equal(t, "invalid webhook url", whErr.ErrMsg)
}

func TestSend_MissingErrCode(t *testing.T) {
	server, _ := newWebhookServer(t, http.StatusOK, `{"errmsg":"ok"}`)
	c, _ := newTestClient(t, server.URL)

	var whErr *WebhookError
	require.ErrorAs(t, c.Send(context.Background(), "content"), &whErr)
}

func TestSend_HTTPError(t *testing.T) {
	server, _ := newWebhookServer(t, http.StatusInternalServerError, "Internal Server Error")
	c, _ := newTestClient(t, server.URL)

	err := c.Send(context.Background(), "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestSend_BadJSONResponse(t *testing.T) {
	server, _ := newWebhookServer(t, http.StatusOK, "not json")
	c, _ := newTestClient(t, server.URL)

	err := c.Send(context.Background(), "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing response")
}

func TestSend_EmptyContent(t *testing.T) {
	server, got := newWebhookServer(t, http.StatusOK, `{"errcode":0}`)
	c, _ := newTestClient(t, server.URL)

	assert.Error(t, c.Send(context.Background(), ""))
	assert.Empty(t, got.requests(), "no request for empty content")
}

func TestSend_OptimizesLongContent(t *testing.T) {
	server, got := newWebhookServer(t, http.StatusOK, `{"errcode":0}`)
	c, logs := newTestClient(t, server.URL)

	long := "### Game\n![游戏封面](https://example.com/c.jpg)\n" +
		strings.Repeat(strings.Repeat("新", 40)+"\n", 100)
	require.Greater(t, message.Length(long), message.SoftLimit)

	require.NoError(t, c.Send(context.Background(), long))

	reqs := got.requests()
	require.Len(t, reqs, 1)
	sent := reqs[0].Payload.MarkdownV2.Content
	assert.NotContains(t, sent, "![游戏封面]")
	assert.LessOrEqual(t, message.Length(sent), message.HardCut+len([]rune("\n...\n*消息过长已截断*")))
	assert.Contains(t, logs.String(), "message exceeds soft limit, optimizing")
}

func TestSend_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, _ := newTestClient(t, url)
	err := c.Send(context.Background(), "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending request")
}
