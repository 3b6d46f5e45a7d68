package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	accountIDKey contextKey = "account_id"
)

// WithRunID annotates context with the correlation identifier of one CLI run.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithAccountID annotates context with the account currently being resolved.
func WithAccountID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, accountIDKey, id)
}

// AccountIDFromContext returns the account identifier if present.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(accountIDKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
