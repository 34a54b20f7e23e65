package http

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/thesisgrade/internal/grading"
)

type roleInfo struct {
	Role   grading.Role   `json:"role"`
	Weight float64        `json:"weight"`
	Rubric grading.Rubric `json:"rubric"`
}

// GET /roles
func ListRolesHandler(engine *grading.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weights := engine.Weights()
		out := make([]roleInfo, 0, 5)
		for _, role := range grading.Roles() {
			out = append(out, roleInfo{Role: role, Weight: weights[role], Rubric: grading.RubricFor(role)})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"roles":   out,
			"divisor": weights.Sum(),
		})
	}
}

// GET /rubrics/{role}
func GetRubricHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "role")
		if s, err := url.PathUnescape(raw); err == nil {
			raw = s
		}
		role, err := grading.ParseRole(raw)
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, grading.RubricFor(role))
	}
}
