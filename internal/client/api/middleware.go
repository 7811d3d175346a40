package api

import (
	"net/http"

	"github.com/dinebridge/dinebridge/internal/common"
	"github.com/google/uuid"
)

// Doer executes a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// Middleware decorates a Doer. Middlewares are the unit of composition for
// cross-cutting request concerns (correlation IDs, auth injection), so each
// stage stays independently testable.
type Middleware func(next Doer) Doer

// Chain wraps base with the given middlewares. The first middleware is the
// outermost: Chain(base, a, b) executes a → b → base.
func Chain(base Doer, middlewares ...Middleware) Doer {
	doer := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		doer = middlewares[i](doer)
	}
	return doer
}

// CredentialSource supplies the current bearer credential, if any. The
// session manager implements it; the client never stores tokens itself.
type CredentialSource interface {
	Token() (string, bool)
}

// RequestID stamps every outbound request with a fresh correlation ID
// unless the caller already set one.
func RequestID() Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(common.RequestIDHeader) == "" {
				req.Header.Set(common.RequestIDHeader, uuid.NewString())
			}
			return next.Do(req)
		})
	}
}

// BearerAuth attaches the current credential as a bearer Authorization
// header. Requests go out unauthenticated when no credential is held;
// a nil source disables injection entirely.
func BearerAuth(source CredentialSource) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if source != nil {
				if token, ok := source.Token(); ok {
					req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
				}
			}
			return next.Do(req)
		})
	}
}
