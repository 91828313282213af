// Package runner performs one daily push: fetch the three feeds, render the
// two messages and deliver them.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/pfrederiksen/daily60s/internal/feed"
	"github.com/pfrederiksen/daily60s/internal/logger"
	"github.com/pfrederiksen/daily60s/internal/message"
	"github.com/pfrederiksen/daily60s/internal/notifier"
)

// Feeds is the source of the three upstream feeds; *feed.Client satisfies it.
type Feeds interface {
	FetchDigest(ctx context.Context) (*feed.Digest, error)
	FetchHistory(ctx context.Context) ([]feed.HistoryEvent, error)
	FetchGames(ctx context.Context) ([]feed.GamePromotion, error)
}

// Messages holds the fetched feeds and the two rendered messages.
type Messages struct {
	Digest *feed.Digest
	Events []feed.HistoryEvent
	Games  []feed.GamePromotion

	Main    string
	History string
}

// Result reports the outcome of each send. The two sends are independent.
type Result struct {
	MainSent    bool
	HistorySent bool
	MainErr     error
	HistoryErr  error
}

// Err joins the send errors; nil when both messages were delivered.
func (r *Result) Err() error {
	return errors.Join(r.MainErr, r.HistoryErr)
}

// Runner wires the feeds to a notifier.
type Runner struct {
	feeds    Feeds
	notifier notifier.Notifier
	log      *logger.Logger
	metrics  *logger.Metrics
}

// New creates a Runner. A nil logger uses the package default.
func New(feeds Feeds, n notifier.Notifier, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Default()
	}
	return &Runner{
		feeds:    feeds,
		notifier: n,
		log:      log,
		metrics:  logger.DefaultMetrics(),
	}
}

// WithMetrics replaces the metrics tracker.
func (r *Runner) WithMetrics(m *logger.Metrics) *Runner {
	r.metrics = m
	return r
}

// Build fetches all three feeds and renders both messages. The first
// failing fetch aborts the build.
func (r *Runner) Build(ctx context.Context) (*Messages, error) {
	msgs := &Messages{}

	err := r.stage("digest", func() (err error) {
		msgs.Digest, err = r.feeds.FetchDigest(ctx)
		return err
	}, func() logger.Fields {
		return logger.Fields{"news": len(msgs.Digest.News), "date": msgs.Digest.Date}
	})
	if err != nil {
		return nil, err
	}

	err = r.stage("history", func() (err error) {
		msgs.Events, err = r.feeds.FetchHistory(ctx)
		return err
	}, func() logger.Fields {
		return logger.Fields{"events": len(msgs.Events)}
	})
	if err != nil {
		return nil, err
	}

	err = r.stage("epic", func() (err error) {
		msgs.Games, err = r.feeds.FetchGames(ctx)
		return err
	}, func() logger.Fields {
		return logger.Fields{"games": len(msgs.Games), "free_now": len(feed.FreeNow(msgs.Games))}
	})
	if err != nil {
		return nil, err
	}

	msgs.Main = message.BuildMain(msgs.Digest, msgs.Games)
	msgs.History = message.BuildHistory(msgs.Digest, msgs.Events)
	r.metrics.SetGauge("message.main.length", float64(message.Length(msgs.Main)))
	r.metrics.SetGauge("message.history.length", float64(message.Length(msgs.History)))
	r.log.Info("messages built", logger.Fields{
		"main_length":    message.Length(msgs.Main),
		"history_length": message.Length(msgs.History),
	})

	return msgs, nil
}

// stage runs one fetch, timing it and logging the outcome.
func (r *Runner) stage(name string, fetch func() error, summary func() logger.Fields) error {
	r.log.Info("fetching feed", logger.Fields{"feed": name})

	start := time.Now()
	err := fetch()
	r.metrics.RecordTiming("fetch."+name, time.Since(start))

	if err != nil {
		r.metrics.IncrCounter("fetch.failed")
		r.log.Error("feed fetch failed", logger.Fields{"feed": name}, err)
		return err
	}

	fields := summary()
	fields["feed"] = name
	r.log.Info("feed fetched", fields)
	return nil
}

// Run builds both messages and sends the main message, then the history
// message. A fetch failure is returned as an error; send failures are
// recorded in the Result and do not stop the other send.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	msgs, err := r.Build(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	result.MainErr = r.send(ctx, notifier.Message{Kind: notifier.KindMain, Content: msgs.Main})
	result.MainSent = result.MainErr == nil

	result.HistoryErr = r.send(ctx, notifier.Message{Kind: notifier.KindHistory, Content: msgs.History})
	result.HistorySent = result.HistoryErr == nil

	return result, nil
}

func (r *Runner) send(ctx context.Context, msg notifier.Message) error {
	start := time.Now()
	err := r.notifier.Notify(ctx, msg)
	r.metrics.RecordTiming("send."+string(msg.Kind), time.Since(start))

	fields := logger.Fields{"kind": string(msg.Kind), "length": message.Length(msg.Content)}
	if err != nil {
		r.metrics.IncrCounter("messages.failed")
		r.log.Error("message delivery failed", fields, err)
		return err
	}

	r.metrics.IncrCounter("messages.sent")
	r.log.Info("message delivered", fields)
	return nil
}
