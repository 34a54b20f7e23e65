package auth

import "context"

type subKey struct{}

// WithSubject records the token subject for handlers and audit logging.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subKey{}, sub)
}

func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(subKey{}).(string)
	return s
}
