package intake

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/thesisgrade/internal/evallog"
	"github.com/mind-engage/thesisgrade/internal/grading"
	"github.com/mind-engage/thesisgrade/internal/logging"
	"github.com/mind-engage/thesisgrade/internal/roster"
)

func ptr(v float64) *float64 { return &v }

func TestImportStudents_RecordsNewAndChangedSeminar(t *testing.T) {
	svc, log := newSvc()
	rs := roster.NewInMemoryStore()
	ctx := context.Background()

	res, err := svc.ImportStudents(ctx, rs, []roster.Student{
		{ID: "2301", Name: "Budi", Seminar: ptr(3.5)},
		{ID: "2302", Name: "Ayu"},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Inserted: 2, SeminarRecorded: 1}, res)

	// unchanged seminar is not appended again; a new value is
	res, err = svc.ImportStudents(ctx, rs, []roster.Student{
		{ID: "2301", Name: "Budi", Seminar: ptr(3.5)},
		{ID: "2302", Name: "Ayu", Seminar: ptr(3.8)},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Updated: 2, SeminarRecorded: 1}, res)

	all, err := log.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, r := range all {
		assert.Equal(t, grading.RoleSeminar, r.Role)
	}
	assert.Equal(t, 3.8, grading.Aggregate(all, "2302").Scores[grading.RoleSeminar])
}

func TestImportStudents_RejectsBadSeminarBeforeWriting(t *testing.T) {
	svc, log := newSvc()
	rs := roster.NewInMemoryStore()
	ctx := context.Background()

	_, err := svc.ImportStudents(ctx, rs, []roster.Student{
		{ID: "2301", Name: "Budi", Seminar: ptr(3.5)},
		{ID: "2302", Name: "Ayu", Seminar: ptr(5)},
	})
	require.Error(t, err)

	list, _ := rs.ListStudents(ctx)
	assert.Empty(t, list)
	all, _ := log.ReadAll(ctx)
	assert.Empty(t, all)

	_, err = svc.ImportStudents(ctx, rs, []roster.Student{{ID: " ", Name: "X"}})
	assert.Error(t, err)
}

type flakyStore struct {
	evallog.Store
	fail bool
}

func (f *flakyStore) Append(ctx context.Context, r grading.Record) (grading.Record, error) {
	if f.fail {
		return grading.Record{}, errors.New("disk full")
	}
	return f.Store.Append(ctx, r)
}

func TestImportStudents_RetryAfterAppendFailure(t *testing.T) {
	st := &flakyStore{Store: evallog.NewInMemoryStore(), fail: true}
	svc := NewService(st, WithLogger(logging.Discard()))
	rs := roster.NewInMemoryStore()
	ctx := context.Background()
	rows := func() []roster.Student {
		return []roster.Student{{ID: "2301", Name: "Budi", Seminar: ptr(3.7)}}
	}

	_, err := svc.ImportStudents(ctx, rs, rows())
	require.Error(t, err)
	list, _ := rs.ListStudents(ctx)
	assert.Empty(t, list, "roster untouched when the log append fails")

	st.fail = false
	res, err := svc.ImportStudents(ctx, rs, rows())
	require.NoError(t, err)
	assert.Equal(t, 1, res.SeminarRecorded)

	all, err := st.ReadAll(ctx)
	require.NoError(t, err)
	agg := grading.Aggregate(all, "2301")
	assert.True(t, agg.Present[grading.RoleSeminar])
	assert.Equal(t, 3.7, agg.Scores[grading.RoleSeminar])
}

func TestImportStudents_IgnoresSeminarForms(t *testing.T) {
	svc, log := newSvc()
	rs := roster.NewInMemoryStore()
	ctx := context.Background()

	// a seminar rubric filled by an evaluator does not count as a roster value
	_, err := svc.Submit(ctx, Submission{
		StudentID: "2301", StudentName: "Budi", EvaluatorName: "Dr. Rina",
		Role: string(grading.RoleSeminar), Criteria: []float64{3.5, 3.5, 3.5, 3.5, 3.5},
	})
	require.NoError(t, err)

	res, err := svc.ImportStudents(ctx, rs, []roster.Student{{ID: "2301", Name: "Budi", Seminar: ptr(3.5)}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SeminarRecorded)

	all, _ := log.ReadAll(ctx)
	assert.Len(t, all, 2)
}

func TestImportStudents_MissingFieldsAreValidationErrors(t *testing.T) {
	svc, _ := newSvc()
	rs := roster.NewInMemoryStore()

	cases := []struct {
		rows  []roster.Student
		field string
	}{
		{[]roster.Student{{ID: " ", Name: "X"}}, "students[0].id"},
		{[]roster.Student{{ID: "2301", Name: "Budi"}, {ID: "2302", Name: ""}}, "students[1].name"},
	}
	for _, c := range cases {
		_, err := svc.ImportStudents(context.Background(), rs, c.rows)
		var ve *grading.ValidationError
		require.True(t, errors.As(err, &ve), "got %v", err)
		assert.Equal(t, c.field, ve.Field)
	}
	list, _ := rs.ListStudents(context.Background())
	assert.Empty(t, list)
}
