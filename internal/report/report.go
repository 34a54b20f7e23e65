package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/thesisgrade/internal/evallog"
	"github.com/mind-engage/thesisgrade/internal/grading"
	"github.com/mind-engage/thesisgrade/internal/metrics"
	"github.com/mind-engage/thesisgrade/internal/storage"
)

// Row is the display form of one student's aggregate. Role scores are
// rounded to two decimals and nil where the role has no record.
type Row struct {
	StudentID   string                    `json:"student_id"`
	StudentName string                    `json:"student_name"`
	Scores      map[grading.Role]*float64 `json:"scores"`
	FinalScore  float64                   `json:"final_score"`
	Letter      grading.LetterGrade       `json:"letter_grade"`
	Complete    bool                      `json:"complete"`
}

func ToRow(a grading.StudentAggregate) Row {
	r := Row{
		StudentID:   a.StudentID,
		StudentName: a.StudentName,
		Scores:      make(map[grading.Role]*float64, 5),
		FinalScore:  grading.Round2(a.FinalScore),
		Letter:      a.Letter,
		Complete:    a.Complete(),
	}
	for _, role := range grading.Roles() {
		if a.Present[role] {
			v := grading.Round2(a.Scores[role])
			r.Scores[role] = &v
		} else {
			r.Scores[role] = nil
		}
	}
	return r
}

func ToRows(aggs []grading.StudentAggregate) []Row {
	out := make([]Row, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, ToRow(a))
	}
	return out
}

// Header is the export column order.
func Header() []string {
	h := []string{"NIM", "Nama"}
	for _, r := range grading.Roles() {
		h = append(h, string(r))
	}
	return append(h, "Nilai Akhir", "Huruf")
}

// WriteCSV writes one row per student. Absent roles are left blank; the
// final score already counts them as 0.
func WriteCSV(w io.Writer, aggs []grading.StudentAggregate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, a := range aggs {
		row := ToRow(a)
		rec := []string{row.StudentID, row.StudentName}
		for _, role := range grading.Roles() {
			if v := row.Scores[role]; v != nil {
				rec = append(rec, strconv.FormatFloat(*v, 'f', 2, 64))
			} else {
				rec = append(rec, "")
			}
		}
		rec = append(rec, strconv.FormatFloat(row.FinalScore, 'f', 2, 64), string(row.Letter))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Service builds reports from a snapshot of the evaluation log.
type Service struct {
	store  evallog.Store
	engine *grading.Engine
	log    *slog.Logger
	now    func() time.Time
}

func NewService(store evallog.Store, engine *grading.Engine, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, engine: engine, log: log, now: time.Now}
}

// Build aggregates every student in the log. A record with an unknown role
// fails this call only; the log is left as is.
func (s *Service) Build(ctx context.Context) ([]grading.StudentAggregate, error) {
	start := time.Now()
	recs, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if err := grading.CheckLog(recs); err != nil {
		s.log.ErrorContext(ctx, "report aborted", "err", err)
		return nil, err
	}
	out := s.engine.AggregateAll(recs)
	metrics.LogRecords.Set(float64(len(recs)))
	metrics.ReportDuration.Observe(time.Since(start).Seconds())
	s.log.DebugContext(ctx, "report built", "records", len(recs), "students", len(out))
	return out, nil
}

// Student aggregates a single student. ok is false when the log holds no
// record for them.
func (s *Service) Student(ctx context.Context, studentID string) (agg grading.StudentAggregate, ok bool, err error) {
	recs, err := s.store.ReadStudent(ctx, studentID)
	if err != nil {
		return grading.StudentAggregate{}, false, fmt.Errorf("read log: %w", err)
	}
	if err := grading.CheckLog(recs); err != nil {
		return grading.StudentAggregate{}, false, err
	}
	return s.engine.Aggregate(recs, studentID), len(recs) > 0, nil
}

// Snapshot writes the current recap as CSV into the blob store and returns
// its key. The copy is for download only.
func (s *Service) Snapshot(ctx context.Context, blobs storage.BlobStore) (string, error) {
	aggs, err := s.Build(ctx)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, aggs); err != nil {
		return "", err
	}
	// the suffix keeps snapshots taken within the same second apart
	key := fmt.Sprintf("exports/rekap-%s-%s.csv",
		s.now().UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
	k, err := blobs.Put(ctx, key, &buf)
	if err != nil {
		return "", fmt.Errorf("store snapshot: %w", err)
	}
	metrics.Reports.WithLabelValues("snapshot").Inc()
	s.log.InfoContext(ctx, "recap snapshot written", "key", k, "students", len(aggs))
	return k, nil
}
