package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failed request into exactly one category.
type Kind string

const (
	// KindNetwork covers connectivity failures where no response was
	// received, including transport timeouts (see Error.Timeout).
	KindNetwork Kind = "network"

	// KindAuthentication is HTTP 401: the credential is missing or stale.
	KindAuthentication Kind = "authentication"

	// KindAuthorization is HTTP 403: authenticated but not allowed.
	KindAuthorization Kind = "authorization"

	// KindValidation is HTTP 422: the request body failed server-side
	// validation; Fields carries per-field messages when present.
	KindValidation Kind = "validation"

	// KindServer is HTTP 5xx, the only retryable category.
	KindServer Kind = "server"

	// KindCancelled is a caller-initiated abort. Never retried, never
	// surfaced to the user.
	KindCancelled Kind = "cancelled"

	// KindUnexpected is everything else, including malformed responses.
	KindUnexpected Kind = "unexpected"
)

// Error is the classified outcome of a failed request.
type Error struct {
	Kind    Kind
	Status  int
	Message string

	// Timeout marks the timeout variant of KindNetwork.
	Timeout bool

	// Fields holds per-field validation messages for KindValidation.
	Fields map[string][]string

	cause error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// FieldMessages flattens Fields into a deterministic, field-ordered list of
// messages, suitable for joining into a single notification.
func (e *Error) FieldMessages() []string {
	if len(e.Fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var msgs []string
	for _, name := range names {
		msgs = append(msgs, e.Fields[name]...)
	}
	return msgs
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == kind
}

// joinMessages renders a field-message list as one user-facing string.
func joinMessages(msgs []string) string {
	return strings.Join(msgs, ", ")
}
