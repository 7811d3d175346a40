package notify

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleNotifier_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, time.Second)

	n.Notify(SeverityError, "server-error", "Server error. Please try again later.")

	out := buf.String()
	assert.Contains(t, out, "[error]")
	assert.Contains(t, out, "Server error")
}

func TestConsoleNotifier_CoalescesBurst(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, time.Second)

	base := time.Now()
	n.now = func() time.Time { return base }

	n.Notify(SeverityError, "unexpected-error", "boom")
	n.Notify(SeverityError, "unexpected-error", "boom")
	n.Notify(SeverityError, "unexpected-error", "boom")

	assert.Equal(t, 1, strings.Count(buf.String(), "boom"))
}

func TestConsoleNotifier_DifferentIDsNotCoalesced(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, time.Second)

	base := time.Now()
	n.now = func() time.Time { return base }

	n.Notify(SeverityError, "network-error", "network down")
	n.Notify(SeverityWarning, "forbidden", "not allowed")

	out := buf.String()
	assert.Contains(t, out, "network down")
	assert.Contains(t, out, "not allowed")
}

func TestConsoleNotifier_ExpiredWindowShowsAgain(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, time.Second)

	base := time.Now()
	n.now = func() time.Time { return base }
	n.Notify(SeverityError, "server-error", "boom")

	n.now = func() time.Time { return base.Add(2 * time.Second) }
	n.Notify(SeverityError, "server-error", "boom")

	assert.Equal(t, 2, strings.Count(buf.String(), "boom"))
}
