package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecker(t *testing.T) {
	c := NewChecker(map[string][]string{
		"clerk": {"report:*", "roster:view"},
	})
	assert.True(t, c.Has("clerk", "report:view"))
	assert.True(t, c.Has("clerk", "report:export"))
	assert.False(t, c.Has("clerk", "roster:write"))
	assert.False(t, c.Has("nobody", "report:view"))
	assert.True(t, c.Any("clerk", "roster:write", "roster:view"))

	def := NewChecker(nil)
	assert.True(t, def.Has(RoleAdmin, "report:view"))
	assert.True(t, def.Has(RoleEvaluator, "evaluation:submit"))
	assert.False(t, def.Has(RoleEvaluator, "report:view"))
}

func TestRequire(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	cases := []struct {
		role string
		want int
	}{
		{"", http.StatusForbidden},
		{RoleEvaluator, http.StatusForbidden},
		{RoleAdmin, http.StatusNoContent},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/report", nil)
		if c.role != "" {
			req = req.WithContext(WithRole(req.Context(), c.role))
		}
		rec := httptest.NewRecorder()
		Require("report:view")(ok).ServeHTTP(rec, req)
		assert.Equal(t, c.want, rec.Code, "role %q", c.role)
	}
}

func TestDefault(t *testing.T) {
	var seen string
	h := Default(RoleEvaluator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RoleFromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, RoleEvaluator, seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(WithRole(req.Context(), RoleAdmin)))
	assert.Equal(t, RoleAdmin, seen)
}
