package evallog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mind-engage/thesisgrade/internal/grading"
)

// Store is the append-only evaluation log. Append must be atomic and must
// never overwrite or reorder earlier records; ReadAll returns a consistent
// snapshot in sequence order.
type Store interface {
	Append(ctx context.Context, r grading.Record) (grading.Record, error)
	ReadAll(ctx context.Context) ([]grading.Record, error)
	ReadStudent(ctx context.Context, studentID string) ([]grading.Record, error)
}

type memoryStore struct {
	mu      sync.RWMutex
	records []grading.Record
}

func NewInMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Append(_ context.Context, r grading.Record) (grading.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.Seq = int64(len(m.records)) + 1
	m.records = append(m.records, r)
	return r, nil
}

func (m *memoryStore) ReadAll(_ context.Context) ([]grading.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]grading.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memoryStore) ReadStudent(_ context.Context, studentID string) ([]grading.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []grading.Record{}
	for _, r := range m.records {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}
