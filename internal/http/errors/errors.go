// Package errors defines the application error taxonomy and the JSON
// error response writers.
//
// Response shapes:
//
//	{"error": "..."}          single error
//	{"errors": ["...", ...]}  aggregated validation failures (400)
//
// Codes, causes and stack context stay server-side; responses carry the
// public message only.
package errors

import (
	"encoding/json"
	"net/http"
)

const contentTypeJSON = "application/json; charset=utf-8"

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors []string `json:"errors"`
}

// WriteError writes the JSON error response for err. Non-AppErrors are
// collapsed into a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: appErr.Message})
}

// WriteValidationErrors writes a 400 listing every violated rule, not
// just the first.
func WriteValidationErrors(w http.ResponseWriter, messages []string) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(validationResponse{Errors: messages})
}
