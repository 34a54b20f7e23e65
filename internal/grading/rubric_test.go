package grading

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRole_Mean(t *testing.T) {
	cases := [][]float64{
		{3.5, 3.5, 3.5, 3.5, 3.5},
		{3.0, 3.2, 3.4, 3.6, 3.8},
		{4.0, 4.0, 4.0, 4.0, 3.0},
		{3.1, 3.7, 3.9, 3.3, 3.6},
	}
	for _, role := range Roles() {
		for _, c := range cases {
			got, err := ScoreRole(role, c)
			require.NoError(t, err)
			want := (c[0] + c[1] + c[2] + c[3] + c[4]) / 5
			assert.Equal(t, want, got, "role %s, scores %v", role, c)
		}
	}
}

func TestScoreRole_WrongCount(t *testing.T) {
	for _, n := range []int{0, 4, 6} {
		c := make([]float64, n)
		for i := range c {
			c[i] = 3.5
		}
		_, err := ScoreRole(RoleExaminer1, c)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve), "count %d: got %v", n, err)
		assert.Equal(t, "criteria", ve.Field)
	}
}

func TestScoreRole_OutOfRange(t *testing.T) {
	for _, bad := range []float64{2.99, 4.01, -1, math.NaN(), math.Inf(1)} {
		c := []float64{3.5, 3.5, bad, 3.5, 3.5}
		_, err := ScoreRole(RoleSupervisor1, c)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve), "value %v: got %v", bad, err)
		assert.Equal(t, "criteria[2]", ve.Field)
	}
}

func TestScoreRole_Bounds(t *testing.T) {
	got, err := ScoreRole(RoleSeminar, []float64{3.0, 3.0, 3.0, 3.0, 3.0})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	got, err = ScoreRole(RoleSeminar, []float64{4.0, 4.0, 4.0, 4.0, 4.0})
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)
}

func TestScoreRole_UnknownRole(t *testing.T) {
	_, err := ScoreRole(Role("Ketua Sidang"), []float64{3.5, 3.5, 3.5, 3.5, 3.5})
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Ketua Sidang", se.Role)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("  Pembimbing II ")
	require.NoError(t, err)
	assert.Equal(t, RoleSupervisor2, r)

	for _, bad := range []string{"", "pembimbing i", "Penguji III", "Supervisor"} {
		_, err := ParseRole(bad)
		var se *SchemaError
		assert.True(t, errors.As(err, &se), "tag %q", bad)
	}
}

func TestRole_ValidIsExact(t *testing.T) {
	for _, r := range Roles() {
		assert.True(t, r.Valid(), "role %s", r)
	}
	for _, bad := range []Role{" Seminar", "Seminar ", "seminar", ""} {
		assert.False(t, bad.Valid(), "tag %q", bad)
	}
}

func TestRubricFor(t *testing.T) {
	assert.Equal(t, RubricSupervisor, RubricFor(RoleSupervisor1).Kind)
	assert.Equal(t, RubricSupervisor, RubricFor(RoleSupervisor2).Kind)
	assert.Equal(t, RubricExaminer, RubricFor(RoleExaminer1).Kind)
	assert.Equal(t, RubricExaminer, RubricFor(RoleExaminer2).Kind)
	assert.Equal(t, RubricExaminer, RubricFor(RoleSeminar).Kind)
	for _, r := range Roles() {
		assert.Len(t, RubricFor(r).Labels, CriteriaCount)
	}

	// callers get their own copy
	rb := RubricFor(RoleSupervisor1)
	rb.Labels[0] = "changed"
	assert.NotEqual(t, "changed", RubricFor(RoleSupervisor1).Labels[0])
}
