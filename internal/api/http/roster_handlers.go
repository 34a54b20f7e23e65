package http

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/mind-engage/thesisgrade/internal/intake"
	"github.com/mind-engage/thesisgrade/internal/roster"
)

// GET /students
func ListStudentsHandler(rs roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := rs.ListStudents(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /lecturers
func ListLecturersHandler(rs roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := rs.ListLecturers(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// POST /students/bulk
//
// Accepts a JSON array in the body, or multipart file= holding JSON or CSV
// (nim,nama,judul,seminar).
func BulkUpsertStudentsHandler(rs roster.Store, svc *intake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []roster.Student
		err := decodeUpload(r, &rows, func(rd io.Reader) error {
			var err error
			rows, err = roster.ParseStudentsCSV(rd)
			return err
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(rows) == 0 {
			writeJSON(w, http.StatusOK, intake.ImportResult{})
			return
		}
		res, err := svc.ImportStudents(r.Context(), rs, rows)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// POST /lecturers/bulk
func BulkUpsertLecturersHandler(rs roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []roster.Lecturer
		err := decodeUpload(r, &rows, func(rd io.Reader) error {
			var err error
			rows, err = roster.ParseLecturersCSV(rd)
			return err
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		clean := rows[:0]
		for _, l := range rows {
			if l.Name = strings.TrimSpace(l.Name); l.Name != "" {
				clean = append(clean, l)
			}
		}
		n, err := rs.UpsertLecturers(r.Context(), clean)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"inserted": n})
	}
}

// decodeUpload reads either a JSON body or a multipart file. Files are
// sniffed by their first non-space byte: '[' or '{' means JSON, anything
// else goes to parseCSV.
func decodeUpload(r *http.Request, dst any, parseCSV func(io.Reader) error) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return errors.New("expected JSON array or multipart file")
		}
		return nil
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return errors.New("file required")
	}
	defer f.Close()
	br := bufio.NewReader(f)
	for {
		b, err := br.Peek(1)
		if err != nil {
			return errors.New("empty file")
		}
		if b[0] == ' ' || b[0] == '\n' || b[0] == '\r' || b[0] == '\t' {
			_, _ = br.ReadByte()
			continue
		}
		if b[0] == '[' || b[0] == '{' {
			if err := json.NewDecoder(br).Decode(dst); err != nil {
				return errors.New("bad json")
			}
			return nil
		}
		if err := parseCSV(br); err != nil {
			return errors.New("bad csv: " + err.Error())
		}
		return nil
	}
}
