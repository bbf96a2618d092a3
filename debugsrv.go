package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// startDebugServer exposes session counters on a local HTTP port. Meant for
// poking at a running client with curl; disabled unless -debugaddr is set.
func startDebugServer(addr string, m *sessionMetrics) {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(m.snapshot())
	})

	go func() {
		Log.Infof("debug server on %s", addr)
		if err := http.ListenAndServe(addr, r); err != nil {
			Log.Errorf("debug server: %v", err)
		}
	}()
}
