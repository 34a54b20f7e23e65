package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/thesisgrade/internal/metrics"
	"github.com/mind-engage/thesisgrade/internal/report"
	"github.com/mind-engage/thesisgrade/internal/roster"
	"github.com/mind-engage/thesisgrade/internal/storage"
)

// GET /report
func ReportHandler(svc *report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aggs, err := svc.Build(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		metrics.Reports.WithLabelValues("json").Inc()
		writeJSON(w, http.StatusOK, report.ToRows(aggs))
	}
}

// GET /report.csv
func ReportCSVHandler(svc *report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aggs, err := svc.Build(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		metrics.Reports.WithLabelValues("csv").Inc()
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="rekap_nilai.csv"`)
		if err := report.WriteCSV(w, aggs); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// GET /report/students/{studentID}
func StudentReportHandler(svc *report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "studentID"))
		agg, ok, err := svc.Student(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			writeError(w, roster.ErrNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"row":       report.ToRow(agg),
			"aggregate": agg,
		})
	}
}

// POST /report/snapshot
func SnapshotHandler(svc *report.Service, blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := svc.Snapshot(r.Context(), blobs)
		if err != nil {
			writeError(w, err)
			return
		}
		u, _ := blobs.SignedURL(key)
		writeJSON(w, http.StatusCreated, map[string]string{"key": key, "url": u})
	}
}
