package controllers

import (
	"net/http"

	"github.com/halleyx/commerce-backend/api/middleware"
	"github.com/halleyx/commerce-backend/api/responses"
	"github.com/halleyx/commerce-backend/api/validators"
	"github.com/halleyx/commerce-backend/internal/admins"
	authsvc "github.com/halleyx/commerce-backend/internal/auth"
	"github.com/halleyx/commerce-backend/internal/customers"
	pkgerrors "github.com/halleyx/commerce-backend/pkg/errors"
	"github.com/halleyx/commerce-backend/pkg/logger"
)

// Register handles customer signup. It responds 201 with the new customer id
// and never issues a token; the client logs in as a second step.
func Register(svc authsvc.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.RegisterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Register(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// CustomerLogin exchanges shopper credentials for a bearer token.
func CustomerLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return login(logg, func(r *http.Request, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
		return svc.CustomerLogin(r.Context(), req)
	})
}

// AdminLogin exchanges operator credentials for a bearer token.
func AdminLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return login(logg, func(r *http.Request, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
		return svc.AdminLogin(r.Context(), req)
	})
}

func login(logg *logger.Logger, authenticate func(*http.Request, authsvc.LoginRequest) (*authsvc.LoginResponse, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.Email = validators.NormalizeEmail(payload.Email)

		resp, err := authenticate(r, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// Profile returns the caller's own account, shaped by role.
func Profile(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := middleware.PrincipalFromContext(r.Context())
		if principal == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		switch {
		case principal.Customer != nil:
			responses.WriteSuccess(w, customers.FromModel(principal.Customer))
		case principal.Admin != nil:
			responses.WriteSuccess(w, admins.FromModel(principal.Admin))
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
		}
	}
}
