package rbac

const (
	RoleEvaluator = "evaluator"
	RoleAdmin     = "admin"
)

// Default policy. Evaluators fill rubric forms; only the admin sees the
// recap and maintains the roster.
var RolePermissions = map[string][]string{
	RoleEvaluator: {
		"evaluation:submit",
		"roster:view",
		"rubric:view",
	},
	RoleAdmin: {
		"*", // everything
	},
}
