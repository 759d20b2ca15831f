package controllers

import (
	"net/http"

	"github.com/halleyx/commerce-backend/api/validators"
	"github.com/halleyx/commerce-backend/pkg/pagination"
)

func paginationParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	}, nil
}
