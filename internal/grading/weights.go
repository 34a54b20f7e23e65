package grading

import (
	"errors"
	"fmt"
	"math"
)

// WeightTable maps each role to its weight in the final score. The divisor
// is always the table's own sum.
type WeightTable map[Role]float64

// DefaultWeights is the committee's standard table (sum 8).
func DefaultWeights() WeightTable {
	return WeightTable{
		RoleSeminar:     1.0,
		RoleSupervisor1: 2.0,
		RoleSupervisor2: 2.0,
		RoleExaminer1:   1.5,
		RoleExaminer2:   1.5,
	}
}

func (w WeightTable) Sum() float64 {
	s := 0.0
	for _, r := range allRoles {
		s += w[r]
	}
	return s
}

// Validate requires a finite, non-negative weight for every role and a
// positive sum. Unknown roles are rejected.
func (w WeightTable) Validate() error {
	for r := range w {
		if !r.Valid() {
			return &SchemaError{Role: string(r)}
		}
	}
	for _, r := range allRoles {
		v, ok := w[r]
		if !ok {
			return fmt.Errorf("weights: missing role %q", r)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("weights: invalid weight %v for %q", v, r)
		}
	}
	if w.Sum() <= 0 {
		return errors.New("weights: sum must be positive")
	}
	return nil
}

func (w WeightTable) clone() WeightTable {
	out := make(WeightTable, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
