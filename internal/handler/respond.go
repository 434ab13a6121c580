package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/mw"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

// requireUser enforces the capability check on mutations: the request context
// must carry a resolved caller. Reads stay open to anonymous callers.
func requireUser(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := mw.UserFrom(r.Context()); !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return false
	}
	return true
}
