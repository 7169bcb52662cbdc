package server

import (
	"context"
	"net/http"
	"strings"
)

type tokenContextKey struct{}

// WithToken binds a tenant's bearer token to the context. The token lives
// only for the duration of the request and is never persisted.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}

// tenantTokenFromRequest extracts the per-request tenant token from the
// Authorization header, falling back to Notion-Token. Validation is left to
// the gateway client, which refuses to dial out without a token.
func tenantTokenFromRequest(ctx context.Context, r *http.Request) context.Context {
	token := ""
	if auth := r.Header.Get("Authorization"); auth != "" {
		if bearer, ok := strings.CutPrefix(auth, "Bearer "); ok {
			token = bearer
		}
	}
	if token == "" {
		token = r.Header.Get("Notion-Token")
	}
	return WithToken(ctx, strings.TrimSpace(token))
}
