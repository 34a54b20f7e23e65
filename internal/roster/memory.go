package roster

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu        sync.RWMutex
	students  map[string]Student
	lecturers map[string]Lecturer
}

func NewInMemoryStore() Store {
	return &memoryStore{
		students:  map[string]Student{},
		lecturers: map[string]Lecturer{},
	}
}

func (m *memoryStore) UpsertStudents(_ context.Context, ss []Student) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ins, upd := 0, 0
	for _, s := range ss {
		if _, ok := m.students[s.ID]; ok {
			upd++
		} else {
			ins++
		}
		m.students[s.ID] = s
	}
	return ins, upd, nil
}

func (m *memoryStore) ListStudents(_ context.Context) ([]Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryStore) GetStudent(_ context.Context, id string) (Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.students[id]
	if !ok {
		return Student{}, ErrNotFound
	}
	return s, nil
}

func (m *memoryStore) UpsertLecturers(_ context.Context, ls []Lecturer) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ins := 0
	for _, l := range ls {
		if _, ok := m.lecturers[l.Name]; !ok {
			ins++
		}
		m.lecturers[l.Name] = l
	}
	return ins, nil
}

func (m *memoryStore) ListLecturers(_ context.Context) ([]Lecturer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Lecturer, 0, len(m.lecturers))
	for _, l := range m.lecturers {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
