package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/inkwell/internal/models"
)

// writeJSON encodes v as JSON and writes it to the response with the given
// HTTP status code. Content-Type is always set to application/json.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// At this point headers are already sent; log but cannot change status.
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// parseID extracts a blog id from a chi URL parameter.
func parseID(r *http.Request, param string) (models.ID, error) {
	id, err := models.ParseID(chi.URLParam(r, param))
	if err != nil {
		return "", fmt.Errorf("invalid %q parameter: %w", param, err)
	}
	return id, nil
}

// filters reads the list filter state from the query string.
func filters(r *http.Request) (category, query string) {
	q := r.URL.Query()
	return q.Get("category"), q.Get("q")
}
