package grading

import "strings"

// Role is one of the five evaluator seats on a thesis committee.
type Role string

const (
	RoleSeminar     Role = "Seminar"
	RoleSupervisor1 Role = "Pembimbing I"
	RoleSupervisor2 Role = "Pembimbing II"
	RoleExaminer1   Role = "Penguji I"
	RoleExaminer2   Role = "Penguji II"
)

var allRoles = []Role{RoleSeminar, RoleSupervisor1, RoleSupervisor2, RoleExaminer1, RoleExaminer2}

// Roles returns the closed role set in report column order.
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole maps a tag to a Role. Surrounding whitespace is ignored; anything
// else must match exactly.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range allRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", &SchemaError{Role: s}
}

// Valid reports whether r is exactly one of the five role tags.
func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

// RubricKind selects which criterion labels an evaluator sees.
type RubricKind string

const (
	RubricSupervisor RubricKind = "supervisor"
	RubricExaminer   RubricKind = "examiner"
)

// Rubric is presentation metadata for a role group. The scorer never reads
// the labels, only the five numbers entered against them.
type Rubric struct {
	Kind    RubricKind `json:"kind"`
	Labels  []string   `json:"labels"`
	Min     float64    `json:"min"`
	Max     float64    `json:"max"`
	Step    float64    `json:"step"`
	Default float64    `json:"default"`
}

var supervisorLabels = []string{
	"Ketrampilan & Ketelitian Kerja",
	"Penalaran memecahkan masalah",
	"Kesanggupan kerja / Usaha keras",
	"Format & kecermatan penulisan",
	"Presentasi data & pembahasan",
}

var examinerLabels = []string{
	"Format & kecermatan penulisan",
	"Kualitas presentasi data & pembahasan",
	"Kemampuan presentasi lisan",
	"Penguasaan materi",
	"Kualitas penalaran",
}

// RubricFor resolves the label set for a role. Supervisors get the
// supervisor rubric; examiners and the seminar panel get the examiner one.
func RubricFor(r Role) Rubric {
	kind := RubricExaminer
	labels := examinerLabels
	if r == RoleSupervisor1 || r == RoleSupervisor2 {
		kind = RubricSupervisor
		labels = supervisorLabels
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return Rubric{
		Kind:    kind,
		Labels:  out,
		Min:     MinCriterion,
		Max:     MaxCriterion,
		Step:    0.1,
		Default: 3.5,
	}
}
