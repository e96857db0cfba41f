package server

import (
	"net/http"
	"net/http/pprof"

	"github.com/abgdnv/gocommerce-admin/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewDebugHandler serves the pprof endpoints under /debug/pprof/ and Prometheus metrics under /metrics.
func NewDebugHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// NewDebugServer creates the side listener for NewDebugHandler.
func NewDebugServer(cfg config.DebugServerConfig) *http.Server {
	return &http.Server{
		Addr:    cfg.Addr,
		Handler: NewDebugHandler(),
	}
}
