package roster

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("student not found")

// Student is a roster entry. Seminar holds a seminar score graded outside
// the rubric form, when the department records one.
type Student struct {
	ID      string   `json:"id"` // NIM
	Name    string   `json:"name"`
	Title   string   `json:"title,omitempty"`
	Seminar *float64 `json:"seminar,omitempty"`
}

type Lecturer struct {
	Name string `json:"name"`
}

type Store interface {
	UpsertStudents(ctx context.Context, ss []Student) (inserted, updated int, err error)
	ListStudents(ctx context.Context) ([]Student, error)
	GetStudent(ctx context.Context, id string) (Student, error)
	UpsertLecturers(ctx context.Context, ls []Lecturer) (inserted int, err error)
	ListLecturers(ctx context.Context) ([]Lecturer, error)
}
