package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/halleyx/commerce-backend/api/middleware"
	"github.com/halleyx/commerce-backend/api/responses"
	"github.com/halleyx/commerce-backend/api/validators"
	customersvc "github.com/halleyx/commerce-backend/internal/customers"
	"github.com/halleyx/commerce-backend/pkg/enums"
	pkgerrors "github.com/halleyx/commerce-backend/pkg/errors"
	"github.com/halleyx/commerce-backend/pkg/logger"
)

// CustomerList returns a page of customer accounts, newest first.
func CustomerList(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// CustomerGet returns one account. Customers may only read their own.
func CustomerGet(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := selfOrAdminTarget(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CustomerUpdate changes profile fields. Customers may only update their own.
func CustomerUpdate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := selfOrAdminTarget(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload customersvc.UpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CustomerDelete removes an account. Customers may only delete their own.
func CustomerDelete(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := selfOrAdminTarget(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CustomerBlock marks an account blocked so its tokens stop resolving.
func CustomerBlock(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return setCustomerStatus(svc, logg, enums.CustomerStatusBlocked)
}

// CustomerUnblock restores a blocked account.
func CustomerUnblock(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return setCustomerStatus(svc, logg, enums.CustomerStatusActive)
}

func setCustomerStatus(svc customersvc.Service, logg *logger.Logger, status enums.CustomerStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SetStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// selfOrAdminTarget resolves the {id} path segment and rejects customers
// acting on anyone but themselves. Admins may target any account.
func selfOrAdminTarget(r *http.Request) (uuid.UUID, error) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		return uuid.Nil, err
	}

	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	if principal.IsAdmin() {
		return id, nil
	}
	if principal.Customer == nil || principal.Customer.ID != id {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot act on another account")
	}
	return id, nil
}
