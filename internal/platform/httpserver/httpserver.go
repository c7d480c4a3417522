package httpserver

import (
	"net/http"
	"time"
)

// New builds the vendorwatch API server. Header and idle timeouts are
// capped, but there is no write timeout: consolidating a large CSV
// batch can legitimately outlast any fixed deadline, so the batch
// handler relies on the request context instead.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
