package server

import (
	"net/http"

	"github.com/aaira-a/mock-api-files/pkg/httputil"
)

// handleSleep holds the request open for the configured delay and then
// answers OK. Callers probing slow-response handling point at this route.
func (s *Server) handleSleep(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.clock.After(s.cfg.SleepDelay):
	case <-r.Context().Done():
		return
	}

	httputil.WriteOK(w, map[string]string{"message": "OK"})
}
