package grading

import (
	"fmt"
	"sort"
)

// Engine combines evaluation records into per-student aggregates.
type Engine struct {
	weights WeightTable
	sum     float64
}

// Engine options

type Option func(*config)

type config struct {
	Weights WeightTable
}

func WithWeights(w WeightTable) Option { return func(c *config) { c.Weights = w } }

// NewEngine builds an engine over the default weight table unless
// WithWeights supplies another one.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := &config{Weights: DefaultWeights()}
	for _, o := range opts {
		o(cfg)
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	w := cfg.Weights.clone()
	return &Engine{weights: w, sum: w.Sum()}, nil
}

var defaultEngine, _ = NewEngine()

// Aggregate uses the default weights.
func Aggregate(log []Record, studentID string) StudentAggregate {
	return defaultEngine.Aggregate(log, studentID)
}

// Weights returns a copy of the configured table.
func (e *Engine) Weights() WeightTable { return e.weights.clone() }

// Aggregate picks, for each role, the record with the latest timestamp for
// the student. On equal timestamps the record later in log wins, so callers
// pass the log in sequence order. A role with no records counts as 0.
func (e *Engine) Aggregate(log []Record, studentID string) StudentAggregate {
	latest := make(map[Role]Record, len(allRoles))
	agg := StudentAggregate{
		StudentID: studentID,
		Scores:    make(map[Role]float64, len(allRoles)),
		Present:   make(map[Role]bool, len(allRoles)),
	}
	var newest Record
	seen := false
	for _, rec := range log {
		if rec.StudentID != studentID {
			continue
		}
		if !seen || !rec.Timestamp.Before(newest.Timestamp) {
			newest = rec
			seen = true
		}
		cur, ok := latest[rec.Role]
		if !ok || !rec.Timestamp.Before(cur.Timestamp) {
			latest[rec.Role] = rec
		}
	}
	if seen {
		agg.StudentName = newest.StudentName
	}
	for _, r := range allRoles {
		rec, ok := latest[r]
		agg.Present[r] = ok
		if ok {
			agg.Scores[r] = rec.RoleAverage
		} else {
			agg.Scores[r] = 0
		}
	}
	agg.FinalScore = e.FinalScore(agg.Scores)
	agg.Letter = LetterFor(agg.FinalScore)
	return agg
}

// FinalScore is Σ value·weight / Σ weight over the five roles.
func (e *Engine) FinalScore(scores map[Role]float64) float64 {
	total := 0.0
	for _, r := range allRoles {
		total += scores[r] * e.weights[r]
	}
	return total / e.sum
}

// AggregateAll pivots the whole log into one aggregate per student,
// ordered by student ID.
func (e *Engine) AggregateAll(log []Record) []StudentAggregate {
	ids := make([]string, 0)
	seen := map[string]struct{}{}
	for _, rec := range log {
		if _, ok := seen[rec.StudentID]; ok {
			continue
		}
		seen[rec.StudentID] = struct{}{}
		ids = append(ids, rec.StudentID)
	}
	sort.Strings(ids)
	out := make([]StudentAggregate, 0, len(ids))
	for _, id := range ids {
		out = append(out, e.Aggregate(log, id))
	}
	return out
}

// CheckLog asserts every record carries a known role. Ingestion already
// guarantees this; readers of foreign data call it before aggregating.
func CheckLog(log []Record) error {
	for _, rec := range log {
		if !rec.Role.Valid() {
			return fmt.Errorf("record %s: %w", rec.ID, &SchemaError{Role: string(rec.Role)})
		}
	}
	return nil
}
