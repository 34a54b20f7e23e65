package evallog_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/thesisgrade/internal/db"
	"github.com/mind-engage/thesisgrade/internal/evallog"
	"github.com/mind-engage/thesisgrade/internal/grading"
)

func openSQLite(t *testing.T) evallog.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })
	return evallog.NewSQLStore(dbh)
}

func stores(t *testing.T) map[string]evallog.Store {
	return map[string]evallog.Store{
		"memory": evallog.NewInMemoryStore(),
		"sqlite": openSQLite(t),
	}
}

func sample(student string, role grading.Role, avg float64, ts time.Time) grading.Record {
	return grading.Record{
		Timestamp:     ts,
		StudentID:     student,
		StudentName:   "Mahasiswa " + student,
		EvaluatorName: "Dr. Rina",
		Role:          role,
		RoleAverage:   avg,
	}
}

func TestStore_AppendAssignsIDAndSeq(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 3, 1, 10, 0, 0, 123, time.UTC)
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a, err := st.Append(ctx, sample("2301", grading.RoleSeminar, 3.5, ts))
			require.NoError(t, err)
			b, err := st.Append(ctx, sample("2301", grading.RoleExaminer1, 3.62, ts))
			require.NoError(t, err)

			assert.NotEmpty(t, a.ID)
			assert.NotEqual(t, a.ID, b.ID)
			assert.Less(t, a.Seq, b.Seq)

			all, err := st.ReadAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, a.ID, all[0].ID)
			assert.Equal(t, grading.RoleExaminer1, all[1].Role)
			assert.Equal(t, 3.62, all[1].RoleAverage)
			assert.True(t, ts.Equal(all[0].Timestamp))
		})
	}
}

func TestStore_ReadStudent(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i, id := range []string{"A", "B", "A"} {
				_, err := st.Append(ctx, sample(id, grading.RoleSupervisor1, 3.0+float64(i)/10, ts))
				require.NoError(t, err)
			}
			got, err := st.ReadStudent(ctx, "A")
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, 3.0, got[0].RoleAverage)
			assert.InDelta(t, 3.2, got[1].RoleAverage, 1e-12)

			none, err := st.ReadStudent(ctx, "Z")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

// Same timestamp, two evaluators for one seat: the later append wins once
// the snapshot is aggregated.
func TestStore_SnapshotOrderDrivesTieBreak(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Append(ctx, sample("S", grading.RoleSupervisor2, 3.3, ts))
			require.NoError(t, err)
			_, err = st.Append(ctx, sample("S", grading.RoleSupervisor2, 3.8, ts))
			require.NoError(t, err)

			log, err := st.ReadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3.8, grading.Aggregate(log, "S").Scores[grading.RoleSupervisor2])
		})
	}
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	st := evallog.NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Append(ctx, sample("S", grading.RoleExaminer2, 3.5, time.Now()))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	all, err := st.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 50)
	seen := map[int64]bool{}
	for _, r := range all {
		assert.False(t, seen[r.Seq])
		seen[r.Seq] = true
	}
}
