package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/aaira-a/mock-api-files/pkg/echo"
	"github.com/aaira-a/mock-api-files/pkg/fixture"
	"github.com/aaira-a/mock-api-files/pkg/httputil"
)

// handleAllTypes copies typed inputs to their output counterparts.
func (s *Server) handleAllTypes(w http.ResponseWriter, r *http.Request) {
	_, decoded, ok := s.jsonBody(w, r)
	if !ok {
		return
	}

	var allTypesInputs map[string]any
	if fields, isMap := decoded.(map[string]any); isMap {
		allTypesInputs, _ = fields["allTypesInputs"].(map[string]any)
	}

	httputil.WriteOK(w, map[string]any{
		"inputs": map[string]any{
			"headers": echo.LowerHeaders(r.Header),
			"body":    decoded,
		},
		"outputs": fixture.AllTypesOutputs(allTypesInputs),
	})
}

// fixtureResponse writes one fixture variant response. The plaintext
// variant bypasses the JSON envelope and is the only response written.
func (s *Server) fixtureResponse(w http.ResponseWriter, r *http.Request, outputs func(fixture.Variant) map[string]any) {
	_, decoded, ok := s.jsonBody(w, r)
	if !ok {
		return
	}

	variant := fixture.Select(r.URL.Query().Get("expected"))
	if variant == fixture.VariantPlaintext {
		httputil.WriteText(w, http.StatusOK, fixture.Plaintext)
		return
	}

	httputil.WriteOK(w, map[string]any{
		"inputs": map[string]any{
			"headers": echo.LowerHeaders(r.Header),
			"body":    decoded,
			"qs":      echo.FlattenQuery(r.URL.Query()),
		},
		"outputs": map[string]any{
			"object": outputs(variant),
		},
	})
}

func (s *Server) handleAllTypesObject(w http.ResponseWriter, r *http.Request) {
	s.fixtureResponse(w, r, fixture.ObjectOutputs)
}

func (s *Server) handleAllTypesArray(w http.ResponseWriter, r *http.Request) {
	s.fixtureResponse(w, r, fixture.ArrayOutputs)
}

// handleDocs serves a JSON document from the configured docs directory.
func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "name"))

	if s.cfg.DocsDir == "" {
		httputil.WriteStatus(w, http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.cfg.DocsDir, name))
	if err != nil {
		httputil.WriteStatus(w, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
