package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type SQLStore struct{ db *sql.DB }

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) UpsertStudents(ctx context.Context, ss []Student) (ins, upd int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	now := time.Now().Unix()
	for _, st := range ss {
		var exists int
		err = tx.QueryRowContext(ctx, `SELECT 1 FROM students WHERE id=$1`, st.ID).Scan(&exists)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO students (id,name,title,seminar,updated_at) VALUES ($1,$2,$3,$4,$5)`,
				st.ID, st.Name, st.Title, nullFloat(st.Seminar), now); err != nil {
				return 0, 0, fmt.Errorf("insert student %s: %w", st.ID, err)
			}
			ins++
		case err != nil:
			return 0, 0, err
		default:
			if _, err = tx.ExecContext(ctx,
				`UPDATE students SET name=$1, title=$2, seminar=$3, updated_at=$4 WHERE id=$5`,
				st.Name, st.Title, nullFloat(st.Seminar), now, st.ID); err != nil {
				return 0, 0, fmt.Errorf("update student %s: %w", st.ID, err)
			}
			upd++
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, 0, err
	}
	return ins, upd, nil
}

func (s *SQLStore) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,name,title,seminar FROM students ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Student{}
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetStudent(ctx context.Context, id string) (Student, error) {
	st, err := scanStudent(s.db.QueryRowContext(ctx, `SELECT id,name,title,seminar FROM students WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Student{}, ErrNotFound
	}
	return st, err
}

func (s *SQLStore) UpsertLecturers(ctx context.Context, ls []Lecturer) (int, error) {
	now := time.Now().Unix()
	ins := 0
	for _, l := range ls {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO lecturers (name,updated_at) VALUES ($1,$2) ON CONFLICT (name) DO NOTHING`,
			l.Name, now)
		if err != nil {
			return ins, fmt.Errorf("insert lecturer %s: %w", l.Name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			ins++
		}
	}
	return ins, nil
}

func (s *SQLStore) ListLecturers(ctx context.Context) ([]Lecturer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM lecturers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Lecturer{}
	for rows.Next() {
		var l Lecturer
		if err := rows.Scan(&l.Name); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (Student, error) {
	var st Student
	var seminar sql.NullFloat64
	if err := row.Scan(&st.ID, &st.Name, &st.Title, &seminar); err != nil {
		return Student{}, err
	}
	if seminar.Valid {
		v := seminar.Float64
		st.Seminar = &v
	}
	return st, nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
