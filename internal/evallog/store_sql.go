package evallog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mind-engage/thesisgrade/internal/grading"
)

// SQLStore keeps the log in the evaluation_log table. The same SQL runs on
// sqlite and postgres.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Append inserts one row; rows are never updated or deleted. The sequence
// number comes from the table's autoincrement key.
func (s *SQLStore) Append(ctx context.Context, r grading.Record) (grading.Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO evaluation_log (id, recorded_at, student_id, student_name, evaluator_name, role, role_average)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING seq`,
		r.ID, r.Timestamp.UnixNano(), r.StudentID, r.StudentName, r.EvaluatorName, string(r.Role), r.RoleAverage).
		Scan(&r.Seq)
	if err != nil {
		return grading.Record{}, fmt.Errorf("append evaluation: %w", err)
	}
	return r, nil
}

const selectCols = `SELECT seq, id, recorded_at, student_id, student_name, evaluator_name, role, role_average FROM evaluation_log`

func (s *SQLStore) ReadAll(ctx context.Context) ([]grading.Record, error) {
	return s.query(ctx, selectCols+` ORDER BY seq`)
}

func (s *SQLStore) ReadStudent(ctx context.Context, studentID string) ([]grading.Record, error) {
	return s.query(ctx, selectCols+` WHERE student_id=$1 ORDER BY seq`, studentID)
}

func (s *SQLStore) query(ctx context.Context, q string, args ...any) ([]grading.Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("read evaluations: %w", err)
	}
	defer rows.Close()
	out := []grading.Record{}
	for rows.Next() {
		var r grading.Record
		var ts int64
		var role string
		if err := rows.Scan(&r.Seq, &r.ID, &ts, &r.StudentID, &r.StudentName, &r.EvaluatorName, &role, &r.RoleAverage); err != nil {
			return nil, err
		}
		r.Timestamp = time.Unix(0, ts).UTC()
		r.Role = grading.Role(role)
		out = append(out, r)
	}
	return out, rows.Err()
}
