// package server contains the loopback HTTP plumbing for interactive
// identity-provider sign-in
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is a request handler that declares the routes it serves, so a
// [LoopbackRouter] can mount it without the caller repeating the paths.
type Handler interface {
	http.Handler
	Routes() []string
}
