// Package health reports voicebot liveness and readiness.
//
// Liveness (/api/health) is always ok while the process serves requests.
// Readiness (/api/readyz) also requires every provider credential to be
// configured, and turns unavailable once shutdown begins.
package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/nadzzz/voicebot/internal/config"
	"github.com/nadzzz/voicebot/internal/message"
)

// Checker tracks readiness and the startup credential snapshot.
type Checker struct {
	keys  config.KeyStatus
	ready atomic.Bool
}

// New creates a Checker over a key status snapshot. It starts not ready.
func New(keys config.KeyStatus) *Checker {
	snapshot := make(config.KeyStatus, len(keys))
	for k, v := range keys {
		snapshot[k] = v
	}
	return &Checker{keys: snapshot}
}

// SetReady marks the daemon as ready to accept traffic.
func (c *Checker) SetReady(ready bool) {
	c.ready.Store(ready)
}

// Ready reports whether the daemon is accepting traffic with every
// credential present.
func (c *Checker) Ready() bool {
	return c.ready.Load() && c.keys.AllPresent()
}

// KeyPresent reports whether the named provider has a credential.
func (c *Checker) KeyPresent(service string) bool {
	return c.keys[service]
}

// Keys returns a copy of the credential snapshot.
func (c *Checker) Keys() config.KeyStatus {
	out := make(config.KeyStatus, len(c.keys))
	for k, v := range c.keys {
		out[k] = v
	}
	return out
}

// Register mounts the health endpoints on mux.
func (c *Checker) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", c.handleHealth)
	mux.HandleFunc("GET /api/readyz", c.handleReady)
}

// handleHealth reports liveness.
//
// @Summary     Liveness check
// @Tags        health
// @Produce     json
// @Success     200  {object}  message.StatusResponse
// @Router      /api/health [get]
func (c *Checker) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, message.StatusResponse{Status: "ok"})
}

// handleReady reports readiness with the per-provider credential status.
//
// @Summary     Readiness check
// @Description Returns 503 while shutting down or when a provider credential is missing.
// @Tags        health
// @Produce     json
// @Success     200  {object}  message.StatusResponse
// @Failure     503  {object}  message.StatusResponse
// @Router      /api/readyz [get]
func (c *Checker) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := message.StatusResponse{Status: "ok", APIKeys: c.Keys()}
	status := http.StatusOK

	switch {
	case !c.ready.Load():
		resp.Status = "not_ready"
		status = http.StatusServiceUnavailable
	case !c.keys.AllPresent():
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	writeStatus(w, status, resp)
}

func writeStatus(w http.ResponseWriter, status int, body message.StatusResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
