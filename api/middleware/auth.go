package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/halleyx/commerce-backend/api/responses"
	pkgAuth "github.com/halleyx/commerce-backend/pkg/auth"
	"github.com/halleyx/commerce-backend/pkg/config"
	pkgerrors "github.com/halleyx/commerce-backend/pkg/errors"
	"github.com/halleyx/commerce-backend/pkg/logger"
)

// PrincipalResolver loads the live account behind verified token claims.
// Returning an unauthorized error revokes access for blocked or deleted
// accounts even when their token is still valid.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*pkgAuth.Principal, error)
}

// Auth validates a bearer token, resolves the live account, and seeds the
// request context with the principal.
func Auth(cfg config.JWTConfig, resolver PrincipalResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			principal, err := resolver.ResolvePrincipal(r.Context(), claims)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"actor_id":   principal.ID().String(),
					"actor_role": string(principal.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
