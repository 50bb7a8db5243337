package auth

import "context"

type ctxKey string

const ctxKeySub ctxKey = "sub"

// WithSubject stores the authenticated username.
func WithSubject(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxKeySub, username)
}

func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxKeySub).(string)
	return s
}
