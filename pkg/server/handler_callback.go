package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aaira-a/mock-api-files/pkg/blobstore"
	"github.com/aaira-a/mock-api-files/pkg/callback"
	"github.com/aaira-a/mock-api-files/pkg/echo"
	"github.com/aaira-a/mock-api-files/pkg/httputil"
)

// handleAsyncCallback acknowledges the request with a receipt, then
// schedules the deferred callback POST when a callbackUrl was supplied.
// The acknowledgment is written before scheduling so the caller never
// waits on the dispatcher.
func (s *Server) handleAsyncCallback(w http.ResponseWriter, r *http.Request) {
	_, decoded, ok := s.jsonBody(w, r)
	if !ok {
		return
	}

	// chi has already URL-decoded the query value.
	callbackURL := r.URL.Query().Get("callbackUrl")

	receipt := callback.Build(echo.LowerHeaders(r.Header), decoded, callbackURL)
	httputil.WriteJSON(w, callback.InitialStatus(decoded), receipt)

	if callbackURL != "" {
		s.dispatcher.Dispatch(receipt)
	}
}

// handleCallbackRecords lists the audit records persisted for an instance.
// A missing or failing store degrades to an empty listing with the error
// attached rather than a 5xx, so pollers keep a stable shape.
func (s *Server) handleCallbackRecords(w http.ResponseWriter, r *http.Request) {
	instanceID := chi.URLParam(r, "instanceId")

	if s.store == nil {
		httputil.WriteOK(w, map[string]any{
			"entries":    []blobstore.Entry{},
			"matchCount": 0,
			"error": map[string]any{
				"message": "no blob store configured",
			},
		})
		return
	}

	listing, err := s.store.List(r.Context(), instanceID+"/")
	if err != nil {
		var detail any = map[string]any{"message": err.Error()}
		if storeErr, isStoreErr := err.(*blobstore.StoreError); isStoreErr {
			detail = storeErr
		}
		httputil.WriteOK(w, map[string]any{
			"entries":    []blobstore.Entry{},
			"matchCount": 0,
			"error":      detail,
		})
		return
	}

	httputil.WriteOK(w, listing)
}
