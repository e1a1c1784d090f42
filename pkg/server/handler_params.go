package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aaira-a/mock-api-files/pkg/echo"
	"github.com/aaira-a/mock-api-files/pkg/httputil"
)

// handleAllParameterTypes echoes header, path, query-string and body
// parameters grouped by where they arrived.
func (s *Server) handleAllParameterTypes(w http.ResponseWriter, r *http.Request) {
	_, decoded, ok := s.jsonBody(w, r)
	if !ok {
		return
	}

	headers := echo.LowerHeaders(r.Header)
	query := echo.FlattenQuery(r.URL.Query())

	httputil.WriteOK(w, map[string]any{
		"inputs": map[string]any{
			"headers":     headers,
			"querystring": query,
			"body":        decoded,
		},
		"allParameterTypesOutput": map[string]any{
			"headers": map[string]any{
				"string_header":  headers["string_header"],
				"integer_header": headers["integer_header"],
				"boolean_header": headers["boolean_header"],
			},
			"path": map[string]any{
				"string-path":  chi.URLParam(r, "string_path"),
				"integer-path": chi.URLParam(r, "integer_path"),
				"boolean-path": chi.URLParam(r, "boolean_path"),
			},
			"querystring": query,
			"body":        decoded,
		},
	})
}

// handlePathEncoding returns the trailing path segment exactly as it
// appeared on the wire, percent-escapes and all.
func (s *Server) handlePathEncoding(w http.ResponseWriter, r *http.Request) {
	_, decoded, ok := s.jsonBody(w, r)
	if !ok {
		return
	}

	raw := strings.TrimPrefix(r.URL.EscapedPath(), "/api/path-encoding/")

	httputil.WriteOK(w, map[string]any{
		"inputs": map[string]any{
			"originalUrl": r.URL.RequestURI(),
			"headers":     echo.LowerHeaders(r.Header),
			"body":        decoded,
		},
		"path": raw,
	})
}

// handleQueryEncoding returns the raw query value after ?string_query= in
// the X-Original-Url header, preserving the caller's exact encoding. The
// already-decoded query on the request URL cannot recover it.
func (s *Server) handleQueryEncoding(w http.ResponseWriter, r *http.Request) {
	_, decoded, ok := s.jsonBody(w, r)
	if !ok {
		return
	}

	original := r.Header.Get("X-Original-Url")
	_, raw, _ := strings.Cut(original, "?string_query=")

	httputil.WriteOK(w, map[string]any{
		"inputs": map[string]any{
			"originalUrl": r.URL.RequestURI(),
			"headers":     echo.LowerHeaders(r.Header),
			"body":        decoded,
		},
		"query": raw,
	})
}

// handleFormURLEncoded parses a form body and echoes each field coerced to
// its declared type. A boolean that is neither "true" nor "false" maps to
// the literal string "error"; unparsable numbers map to null.
func (s *Server) handleFormURLEncoded(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	ct := r.Header.Get("Content-Type")
	isForm := strings.HasPrefix(strings.ToLower(ct), "application/x-www-form-urlencoded")

	var form url.Values
	if isForm {
		form, _ = url.ParseQuery(string(body))
	}

	outputs := map[string]any{
		"textPathOutput": chi.URLParam(r, "string_path"),
	}

	if form.Has("string") {
		outputs["textOutput"] = form.Get("string")
	}
	if f, err := strconv.ParseFloat(form.Get("decimal"), 64); err == nil {
		outputs["decimalOutput"] = f
	} else {
		outputs["decimalOutput"] = nil
	}
	if i, err := strconv.Atoi(form.Get("integer")); err == nil {
		outputs["integerOutput"] = i
	} else {
		outputs["integerOutput"] = nil
	}
	switch form.Get("boolean") {
	case "true":
		outputs["booleanOutput"] = true
	case "false":
		outputs["booleanOutput"] = false
	default:
		outputs["booleanOutput"] = "error"
	}
	if form.Has("datetime") {
		outputs["datetimeOutput"] = form.Get("datetime")
	}

	httputil.WriteOK(w, map[string]any{
		"inputs": map[string]any{
			"originalUrl":           r.URL.RequestURI(),
			"headers":               echo.LowerHeaders(r.Header),
			"body":                  string(body),
			"x-www-form-urlencoded": isForm,
		},
		"outputs": outputs,
	})
}
