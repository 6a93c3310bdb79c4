// Package httpserver constructs the API server with timeouts sized for this
// service's slowest handlers.
package httpserver

import (
	"net/http"
	"time"
)

// The write timeout must outlast the AI proxy's 30s upstream budget, and the
// read timeout leaves room for multipart uploads on slow links.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 2 * time.Minute
)

// New builds the http.Server serving the API router on addr.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
