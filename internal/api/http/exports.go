package http

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/thesisgrade/internal/storage"
)

const exportsPrefix = "exports/"

// MountExports serves recap snapshots written by POST /report/snapshot.
func MountExports(r chi.Router, bs storage.BlobStore) {
	// GET /exports -> snapshot keys, oldest first
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		keys, err := bs.List(r.Context(), exportsPrefix)
		if err != nil {
			writeError(w, err)
			return
		}
		if keys == nil {
			keys = []string{}
		}
		writeJSON(w, http.StatusOK, keys)
	})

	// GET /exports/* -> the snapshot named by whatever follows /exports/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		if name == "" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		rc, err := bs.Get(r.Context(), exportsPrefix+name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(name)+`"`)
		_, _ = io.Copy(w, rc)
	})
}
