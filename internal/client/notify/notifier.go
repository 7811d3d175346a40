// Package notify provides the user-facing notification sink: fire-and-forget
// messages with a severity and a de-duplication identifier, so overlapping
// failure bursts collapse into a single message.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notifier delivers a message to the user. Messages sharing the same id
// within a short burst window are shown at most once.
type Notifier interface {
	Notify(severity Severity, id string, message string)
}

// DefaultBurstWindow is the interval within which notifications sharing an
// id are coalesced.
const DefaultBurstWindow = 5 * time.Second

// ConsoleNotifier writes notifications to an io.Writer (typically stderr),
// suppressing repeats of the same id inside the burst window.
type ConsoleNotifier struct {
	w      io.Writer
	window time.Duration

	mu   sync.Mutex
	seen map[string]time.Time

	now func() time.Time
}

// NewConsoleNotifier returns a ConsoleNotifier writing to w. A non-positive
// window falls back to DefaultBurstWindow.
func NewConsoleNotifier(w io.Writer, window time.Duration) *ConsoleNotifier {
	if window <= 0 {
		window = DefaultBurstWindow
	}
	return &ConsoleNotifier{
		w:      w,
		window: window,
		seen:   make(map[string]time.Time),
		now:    time.Now,
	}
}

func (n *ConsoleNotifier) Notify(severity Severity, id string, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	if last, ok := n.seen[id]; ok && now.Sub(last) < n.window {
		return
	}
	n.seen[id] = now

	fmt.Fprintf(n.w, "[%s] %s\n", severity, message)
}

// Nop is a Notifier that discards everything. Useful in tests and for
// headless tooling.
type Nop struct{}

func (Nop) Notify(Severity, string, string) {}
