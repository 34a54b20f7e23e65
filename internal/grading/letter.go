package grading

import "math"

type LetterGrade string

const (
	GradeA          LetterGrade = "A"
	GradeAMinus     LetterGrade = "A-"
	GradeAB         LetterGrade = "A/B"
	GradeBPlus      LetterGrade = "B+"
	GradeB          LetterGrade = "B"
	GradeIncomplete LetterGrade = "C / Incomplete"
)

type band struct {
	min   float64
	grade LetterGrade
}

// Highest threshold first; the first band whose lower bound is met wins.
var ladder = []band{
	{3.81, GradeA},
	{3.61, GradeAMinus},
	{3.41, GradeAB},
	{3.21, GradeBPlus},
	{3.01, GradeB},
}

// LetterFor maps a final score to a letter grade. It is total: NaN and
// anything below the last threshold land in the lowest band. The score is
// compared at full precision.
func LetterFor(score float64) LetterGrade {
	if math.IsNaN(score) {
		return GradeIncomplete
	}
	for _, b := range ladder {
		if score >= b.min {
			return b.grade
		}
	}
	return GradeIncomplete
}

// Round2 rounds to two decimals for display and export.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
