package notifier

import (
	"context"
	"errors"
)

// Kind identifies which of the two daily messages is being delivered.
type Kind string

const (
	KindMain    Kind = "main"
	KindHistory Kind = "history"
)

// Label is the human-facing name of the message kind.
func (k Kind) Label() string {
	switch k {
	case KindMain:
		return "主消息"
	case KindHistory:
		return "历史消息"
	default:
		return string(k)
	}
}

// Message is one rendered markdown message.
type Message struct {
	Kind    Kind
	Content string
}

// Notifier defines the interface for delivering messages
type Notifier interface {
	// Notify delivers a single message
	Notify(ctx context.Context, msg Message) error
}

// Multi delivers every message to each notifier in order. All notifiers are
// attempted; their errors are joined.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
