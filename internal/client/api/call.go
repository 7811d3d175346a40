package api

import "context"

// Call pairs a request-issuing function with an independent cancellation
// handle, so UI code can abort an in-flight request (component teardown,
// superseding input) without touching the client's shared pipeline.
type Call struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCall derives a cancellable context from parent for a single request.
func NewCall(parent context.Context) *Call {
	ctx, cancel := context.WithCancel(parent)
	return &Call{ctx: ctx, cancel: cancel}
}

// Execute runs fn with the call's context. A Cancel issued before or during
// fn settles the request as KindCancelled.
func (c *Call) Execute(fn func(ctx context.Context) error) error {
	return fn(c.ctx)
}

// Context exposes the call's context for request helpers that take one.
func (c *Call) Context() context.Context { return c.ctx }

// Cancel aborts the in-flight request. Safe to call multiple times.
func (c *Call) Cancel() { c.cancel() }
