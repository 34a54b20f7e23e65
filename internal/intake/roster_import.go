package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/mind-engage/thesisgrade/internal/grading"
	"github.com/mind-engage/thesisgrade/internal/roster"
)

type ImportResult struct {
	Inserted        int `json:"inserted"`
	Updated         int `json:"updated"`
	SeminarRecorded int `json:"seminar_recorded"`
}

// ImportStudents appends a Seminar record for every roster seminar score
// that differs from the last one carried into the log, then upserts the
// roster rows. Rows are checked before anything is written. The log is
// compared rather than the roster, so an import that failed halfway is
// completed by running it again.
func (s *Service) ImportStudents(ctx context.Context, rs roster.Store, students []roster.Student) (ImportResult, error) {
	var res ImportResult
	changed := make([]roster.Student, 0)
	for i := range students {
		st := &students[i]
		st.ID = strings.TrimSpace(st.ID)
		st.Name = strings.TrimSpace(st.Name)
		switch {
		case st.ID == "":
			return res, &grading.ValidationError{Field: fmt.Sprintf("students[%d].id", i), Reason: "required"}
		case st.Name == "":
			return res, &grading.ValidationError{Field: fmt.Sprintf("students[%d].name", i), Reason: "required"}
		}
		if st.Seminar == nil {
			continue
		}
		if err := grading.CheckRoleAverage(*st.Seminar); err != nil {
			return res, fmt.Errorf("student %s: %w", st.ID, err)
		}
		last, ok, err := s.lastRosterSeminar(ctx, st.ID)
		if err != nil {
			return res, err
		}
		if !ok || last != *st.Seminar {
			changed = append(changed, *st)
		}
	}

	for _, st := range changed {
		if _, err := s.RecordSeminar(ctx, st.ID, st.Name, *st.Seminar); err != nil {
			return res, err
		}
		res.SeminarRecorded++
	}
	ins, upd, err := rs.UpsertStudents(ctx, students)
	if err != nil {
		return res, err
	}
	res.Inserted, res.Updated = ins, upd
	s.log.InfoContext(ctx, "roster imported",
		"inserted", res.Inserted, "updated", res.Updated, "seminar_recorded", res.SeminarRecorded)
	return res, nil
}

// lastRosterSeminar returns the most recent seminar score that came from a
// roster import. Seminar forms filled by evaluators are not considered.
func (s *Service) lastRosterSeminar(ctx context.Context, studentID string) (float64, bool, error) {
	recs, err := s.store.ReadStudent(ctx, studentID)
	if err != nil {
		return 0, false, fmt.Errorf("read log: %w", err)
	}
	var (
		last  grading.Record
		found bool
	)
	for _, r := range recs {
		if r.Role != grading.RoleSeminar || r.EvaluatorName != SeminarEvaluator {
			continue
		}
		if !found || !r.Timestamp.Before(last.Timestamp) {
			last, found = r, true
		}
	}
	return last.RoleAverage, found, nil
}
