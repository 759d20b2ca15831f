package middleware

import (
	"context"

	"github.com/google/uuid"

	pkgAuth "github.com/halleyx/commerce-backend/pkg/auth"
)

type contextKey string

const ctxPrincipal contextKey = "principal"

// WithPrincipal injects the resolved identity into the context.
func WithPrincipal(ctx context.Context, principal *pkgAuth.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, principal)
}

// PrincipalFromContext returns the resolved identity, or nil for anonymous requests.
func PrincipalFromContext(ctx context.Context) *pkgAuth.Principal {
	if ctx == nil {
		return nil
	}
	if p, ok := ctx.Value(ctxPrincipal).(*pkgAuth.Principal); ok {
		return p
	}
	return nil
}

// CustomerIDFromContext returns the customer id when the caller is a customer.
func CustomerIDFromContext(ctx context.Context) uuid.UUID {
	p := PrincipalFromContext(ctx)
	if p == nil || p.Customer == nil {
		return uuid.Nil
	}
	return p.Customer.ID
}
