package grading

import "time"

// Record is one evaluator submission as stored in the evaluation log.
// Records are appended once and never changed.
type Record struct {
	ID            string    `json:"id"`
	Seq           int64     `json:"seq"` // log sequence, assigned by the store
	Timestamp     time.Time `json:"timestamp"`
	StudentID     string    `json:"student_id"`
	StudentName   string    `json:"student_name"`
	EvaluatorName string    `json:"evaluator_name"`
	Role          Role      `json:"role"`
	RoleAverage   float64   `json:"role_average"`
}

// StudentAggregate is derived from the log on every request and never
// stored as authoritative state.
type StudentAggregate struct {
	StudentID   string           `json:"student_id"`
	StudentName string           `json:"student_name"`
	Scores      map[Role]float64 `json:"scores"`  // missing roles hold 0
	Present     map[Role]bool    `json:"present"` // false where no record exists
	FinalScore  float64          `json:"final_score"`
	Letter      LetterGrade      `json:"letter_grade"`
}

// Complete reports whether every role has at least one record.
func (a StudentAggregate) Complete() bool {
	for _, r := range allRoles {
		if !a.Present[r] {
			return false
		}
	}
	return true
}
