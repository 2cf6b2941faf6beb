package handler

import (
	"encoding/json"
	"net/http"

	apperrors "pdf-book-reader/pkg/errors"
)

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeAppError maps a service error onto its status and user-facing notice
func writeAppError(w http.ResponseWriter, err error) {
	appErr := apperrors.FromDomain(err)
	writeError(w, apperrors.GetStatusCode(appErr), appErr.Message)
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON reads a small JSON body into dst, rejecting unknown fields
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
