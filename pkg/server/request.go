package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/aaira-a/mock-api-files/pkg/echo"
	"github.com/aaira-a/mock-api-files/pkg/httputil"
)

// stripGatewayEventHeader drops the API-gateway envelope header some
// upstream proxies attach; clients never sent it and must not see it echoed.
func stripGatewayEventHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Del("X-Apigateway-Event")
		next.ServeHTTP(w, r)
	})
}

// logRequests records one debug line per served request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// readBody drains the request body under the configured size cap. On
// failure it writes the error response and reports handled=false.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Body == nil {
		return nil, true
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.log.Warn("request body too large", "path", r.URL.Path, "limit", s.cfg.MaxBodyBytes)
			httputil.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		httputil.WriteBadRequest(w, err.Error())
		return nil, false
	}
	return data, true
}

// decodeJSONBody enforces the JSON parsing boundary: a request that declares
// a JSON content type but carries a malformed body gets a 400 with the parse
// failure details, before any handler logic runs. Requests without a JSON
// body decode to nil.
func (s *Server) decodeJSONBody(w http.ResponseWriter, r *http.Request, body []byte) (any, bool) {
	if len(body) == 0 || !echo.IsJSONContentType(r.Header.Get("Content-Type")) {
		return nil, true
	}

	v, err := decodeJSON(body)
	if err != nil {
		httputil.WriteBadRequest(w, map[string]any{
			"message": err.Error(),
			"body":    string(body),
		})
		return nil, false
	}
	return v, true
}

func decodeJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// jsonBody reads and decodes a JSON request body in one step.
func (s *Server) jsonBody(w http.ResponseWriter, r *http.Request) (body []byte, decoded any, ok bool) {
	body, ok = s.readBody(w, r)
	if !ok {
		return nil, nil, false
	}
	decoded, ok = s.decodeJSONBody(w, r, body)
	if !ok {
		return nil, nil, false
	}
	return body, decoded, true
}
