package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows any origin: the assist API serves a browser game hosted
// wherever and carries no credentials worth protecting.
func Cors() Middleware {
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	}).Handler
}
