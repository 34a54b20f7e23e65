package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mind-engage/thesisgrade/internal/evallog"
	"github.com/mind-engage/thesisgrade/internal/grading"
	"github.com/mind-engage/thesisgrade/internal/intake"
)

// POST /evaluations
func SubmitEvaluationHandler(svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub intake.Submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		rec, err := svc.Submit(r.Context(), sub)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

// GET /evaluations?student_id=...&limit=100&offset=0
//
// Raw log view in sequence order, newest last.
func ListEvaluationsHandler(store evallog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := strings.TrimSpace(r.URL.Query().Get("student_id"))
		limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

		var (
			recs []grading.Record
			err  error
		)
		if studentID != "" {
			recs, err = store.ReadStudent(r.Context(), studentID)
		} else {
			recs, err = store.ReadAll(r.Context())
		}
		if err != nil {
			writeError(w, err)
			return
		}
		if offset > len(recs) {
			offset = len(recs)
		}
		recs = recs[offset:]
		if limit > 0 && limit < len(recs) {
			recs = recs[:limit]
		}
		writeJSON(w, http.StatusOK, recs)
	}
}
