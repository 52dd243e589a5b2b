// Package httpserver builds the process HTTP server with conservative
// timeouts. Attempt verification runs entirely server-side, so generous
// write deadlines are unnecessary.
package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for this service.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
