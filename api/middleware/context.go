package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/igreja360/tesouraria-backend/internal/audit"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxOrigin contextKey = "origin_ip"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func OriginFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxOrigin).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the authenticated user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithOrigin injects the client origin address into the context.
func WithOrigin(ctx context.Context, origin string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxOrigin, origin)
}

// ActorFromContext assembles the audit actor for the current request. The
// actor id stays nil before authentication completes.
func ActorFromContext(ctx context.Context) audit.Actor {
	actor := audit.Actor{IP: OriginFromContext(ctx)}
	if raw := UserIDFromContext(ctx); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			actor.ID = id
		}
	}
	return actor
}
