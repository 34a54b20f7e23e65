package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mind-engage/thesisgrade/internal/grading"
	"github.com/mind-engage/thesisgrade/internal/roster"
)

type errorBody struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto status codes. Validation and schema
// failures tell the evaluator which constraint was violated.
func writeError(w http.ResponseWriter, err error) {
	var ve *grading.ValidationError
	var se *grading.SchemaError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation", Field: ve.Field, Reason: ve.Reason})
	case errors.As(err, &se):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "schema", Field: "role", Reason: se.Error()})
	case errors.Is(err, roster.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
