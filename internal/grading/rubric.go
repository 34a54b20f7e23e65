package grading

import (
	"fmt"
	"math"
)

const (
	MinCriterion  = 3.0
	MaxCriterion  = 4.0
	CriteriaCount = 5
)

// ScoreRole averages the five criterion scores an evaluator entered for a
// role. The result keeps full precision; rounding happens only on display.
func ScoreRole(role Role, criteria []float64) (float64, error) {
	if !role.Valid() {
		return 0, &SchemaError{Role: string(role)}
	}
	if len(criteria) != CriteriaCount {
		return 0, &ValidationError{
			Field:  "criteria",
			Reason: fmt.Sprintf("expected %d scores, got %d", CriteriaCount, len(criteria)),
		}
	}
	total := 0.0
	for i, v := range criteria {
		if err := checkCriterion(v); err != nil {
			return 0, &ValidationError{Field: fmt.Sprintf("criteria[%d]", i), Reason: err.Error()}
		}
		total += v
	}
	return total / float64(len(criteria)), nil
}

func checkCriterion(v float64) error {
	if math.IsNaN(v) || v < MinCriterion || v > MaxCriterion {
		return fmt.Errorf("%v outside [%.2f, %.2f]", v, MinCriterion, MaxCriterion)
	}
	return nil
}

// CheckRoleAverage applies the criterion range to an already averaged value,
// e.g. a seminar score carried over from the roster.
func CheckRoleAverage(v float64) error {
	if err := checkCriterion(v); err != nil {
		return &ValidationError{Field: "role_average", Reason: err.Error()}
	}
	return nil
}
