package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aaira-a/mock-api-files/pkg/echo"
	"github.com/aaira-a/mock-api-files/pkg/httputil"
)

func (s *Server) handleHello(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, map[string]string{"hello": "world"})
}

// responseStatus resolves the optional status path segment. A missing or
// non-numeric segment means the default.
func responseStatus(r *http.Request, fallback int) int {
	seg := chi.URLParam(r, "status")
	if seg == "" {
		return fallback
	}
	status, err := strconv.Atoi(seg)
	if err != nil || status < 100 || status > 599 {
		return fallback
	}
	return status
}

// handleEcho reflects the request back to the caller. The status segment,
// when present, replaces the default 200; either way exactly one response
// is written.
func (s *Server) handleEcho(w http.ResponseWriter, r *http.Request) {
	body, _, ok := s.jsonBody(w, r)
	if !ok {
		return
	}

	result := echo.FromRequest(r, body)
	httputil.WriteJSON(w, responseStatus(r, http.StatusOK), result)
}

// handleEchoFromText reflects a plain-text request. The raw text is carried
// under echo-body-text; if the text happens to be a JSON object, its fields
// are additionally merged into the top level of the response.
func (s *Server) handleEchoFromText(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	result := echo.FromRequest(r, nil)
	resp := map[string]any{
		"echo-method":  result.Method,
		"echo-headers": result.Headers,
		"echo-qs":      result.Query,
	}
	if result.BodyContentType != "" {
		resp["echo-body-content-type"] = result.BodyContentType
	}

	if len(body) > 0 {
		text := string(body)
		resp["echo-body-text"] = text

		var parsed map[string]any
		if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err == nil {
			for k, v := range parsed {
				resp[k] = v
			}
		}
	}

	httputil.WriteJSON(w, responseStatus(r, http.StatusOK), resp)
}

// handleFileError responds with the status the caller asked for and no body.
func (s *Server) handleFileError(w http.ResponseWriter, r *http.Request) {
	httputil.WriteStatus(w, responseStatus(r, http.StatusOK))
}
