package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseStudentsCSV reads a student roster with a header row. Required
// columns: nim, nama. Optional: judul, seminar. Header names are matched
// case-insensitively; spaces and underscores are ignored.
func ParseStudentsCSV(r io.Reader) ([]Student, error) {
	recs, idx, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	for _, k := range []string{"nim", "nama"} {
		if _, ok := idx[k]; !ok {
			return nil, errors.New("missing column: " + k)
		}
	}
	out := make([]Student, 0, len(recs))
	for i, rec := range recs {
		st := Student{
			ID:    cell(rec, idx, "nim"),
			Name:  cell(rec, idx, "nama"),
			Title: cell(rec, idx, "judul"),
		}
		if st.ID == "" || st.Name == "" {
			return nil, fmt.Errorf("row %d: nim and nama are required", i+2)
		}
		if raw := cell(rec, idx, "seminar"); raw != "" {
			v, ok := parseScore(raw)
			if !ok {
				return nil, fmt.Errorf("row %d: bad seminar score %q", i+2, raw)
			}
			st.Seminar = &v
		}
		out = append(out, st)
	}
	return out, nil
}

// ParseLecturersCSV reads a lecturer list with a nama_dosen (or nama) column.
func ParseLecturersCSV(r io.Reader) ([]Lecturer, error) {
	recs, idx, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	col := "namadosen"
	if _, ok := idx[col]; !ok {
		col = "nama"
	}
	if _, ok := idx[col]; !ok {
		return nil, errors.New("missing column: nama_dosen")
	}
	out := make([]Lecturer, 0, len(recs))
	for _, rec := range recs {
		if name := cell(rec, idx, col); name != "" {
			out = append(out, Lecturer{Name: name})
		}
	}
	return out, nil
}

func readCSV(r io.Reader) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	hdr, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("empty csv")
		}
		return nil, nil, err
	}
	idx := map[string]int{}
	for i, h := range hdr {
		idx[headerKey(h)] = i
	}
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return recs, idx, nil
}

func headerKey(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer(" ", "", "_", "").Replace(h)
}

func cell(rec []string, idx map[string]int, key string) string {
	i, ok := idx[key]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseScore accepts both "3.75" and the Indonesian "3,75".
func parseScore(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		if v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}
