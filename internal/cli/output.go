package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/pfrederiksen/daily60s/internal/feed"
	"github.com/pfrederiksen/daily60s/internal/message"
	"github.com/pfrederiksen/daily60s/internal/notifier"
	"github.com/pfrederiksen/daily60s/internal/runner"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// KindCombined labels the single document produced by preview --combined.
const KindCombined notifier.Kind = "combined"

// PreviewMessage is one rendered message with its size.
type PreviewMessage struct {
	Kind         notifier.Kind `json:"kind"`
	Content      string        `json:"content"`
	Length       int           `json:"length"`
	DisplayWidth int           `json:"display_width"`
	OverSoft     bool          `json:"over_soft_limit"`
}

// PreviewResult contains data to be output
type PreviewResult struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Date        string           `json:"date"`
	DayOfWeek   string           `json:"day_of_week"`
	NewsCount   int              `json:"news_count"`
	EventCount  int              `json:"event_count"`
	FreeGames   int              `json:"free_games"`
	Messages    []PreviewMessage `json:"messages"`
}

// NewPreviewResult measures the built messages. With combined set both
// messages are joined into one.
func NewPreviewResult(msgs *runner.Messages, combined bool) *PreviewResult {
	result := &PreviewResult{
		GeneratedAt: time.Now().UTC(),
		Date:        msgs.Digest.Date,
		DayOfWeek:   msgs.Digest.DayOfWeek,
		NewsCount:   len(msgs.Digest.News),
		EventCount:  len(msgs.Events),
		FreeGames:   len(feed.FreeNow(msgs.Games)),
	}

	if combined {
		result.Messages = []PreviewMessage{
			measure(KindCombined, message.Combined(msgs.Main, msgs.History)),
		}
		return result
	}

	result.Messages = []PreviewMessage{
		measure(notifier.KindMain, msgs.Main),
		measure(notifier.KindHistory, msgs.History),
	}
	return result
}

func measure(kind notifier.Kind, content string) PreviewMessage {
	length := message.Length(content)
	return PreviewMessage{
		Kind:         kind,
		Content:      content,
		Length:       length,
		DisplayWidth: runewidth.StringWidth(content),
		OverSoft:     length > message.SoftLimit,
	}
}

// WritePreview writes the result in the specified format
func WritePreview(w io.Writer, result *PreviewResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// writeText prints each message the way a dry run would.
func writeText(w io.Writer, result *PreviewResult) error {
	dry := notifier.NewDryRunNotifier(w)
	for _, m := range result.Messages {
		if err := dry.Notify(context.Background(), notifier.Message{Kind: m.Kind, Content: m.Content}); err != nil {
			return err
		}
		if m.OverSoft {
			fmt.Fprintf(w, "note: %s message exceeds %d characters and will be shortened when sent\n\n",
				m.Kind, message.SoftLimit)
		}
	}
	return nil
}

// WriteSummary reports the outcome of each send.
func WriteSummary(w io.Writer, result *runner.Result) error {
	fmt.Fprintf(w, "%s: %s\n", notifier.KindMain.Label(), status(result.MainSent))
	_, err := fmt.Fprintf(w, "%s: %s\n", notifier.KindHistory.Label(), status(result.HistorySent))
	return err
}

func status(ok bool) string {
	if ok {
		return "sent"
	}
	return "failed"
}
