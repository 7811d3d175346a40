// Package common defines shared constants and sentinel errors used across
// DineBridge client layers. Callers match the sentinels with errors.Is.
package common

import "errors"

// ErrUnauthorized is returned for operations that need a credential when
// none is held.
var ErrUnauthorized = errors.New("unauthorized")

// AuthorizationHeader is the HTTP header carrying the bearer credential on
// outbound requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-Id"
