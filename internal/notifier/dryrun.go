package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pfrederiksen/daily60s/internal/message"
)

const minRulerWidth = 50

// DryRunNotifier prints what would be sent without actually posting
type DryRunNotifier struct {
	w io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to w (stdout when nil).
func NewDryRunNotifier(w io.Writer) *DryRunNotifier {
	if w == nil {
		w = os.Stdout
	}
	return &DryRunNotifier{w: w}
}

// Notify prints the message between rulers along with its length.
func (n *DryRunNotifier) Notify(_ context.Context, msg Message) error {
	heading := fmt.Sprintf("%s Markdown 内容:", msg.Kind.Label())
	ruler := strings.Repeat("=", max(minRulerWidth, runewidth.StringWidth(heading)))

	fmt.Fprintln(n.w, ruler)
	fmt.Fprintln(n.w, heading)
	fmt.Fprintln(n.w, ruler)
	fmt.Fprintln(n.w, msg.Content)
	fmt.Fprintln(n.w, ruler)

	_, err := fmt.Fprintf(n.w, "(Length: %d characters, display width %d)\n\n",
		message.Length(msg.Content), runewidth.StringWidth(msg.Content))
	return err
}
