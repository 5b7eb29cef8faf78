// Package middleware holds the cross-cutting HTTP wrappers the server
// is assembled from: CORS and request logging.
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Wrap layers mws around h so that a request passes through the last
// element of mws first.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}
