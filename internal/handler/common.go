// Package handler implements the HTTP endpoints of the advert board. Every
// handler follows the same shape: resolve the acting user, consult the
// rights table, then delegate to a repository and translate failures through
// respondError.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/advert-board/internal/query"
	"github.com/iliyamo/advert-board/internal/repository"
	"github.com/iliyamo/advert-board/internal/resource"
	"github.com/iliyamo/advert-board/internal/rights"
	"github.com/iliyamo/advert-board/internal/utils"
)

// respondError maps domain errors onto the API's status contract. Missing
// records deliberately answer 400, not 404.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, rights.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, rights.ErrForbidden):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrConflict):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, utils.ErrWeakPassword):
		status, msg = http.StatusUnprocessableEntity, err.Error()
	}
	return c.JSON(status, echo.Map{"error": msg})
}

// errInvalidParams marks malformed query or path input (non-numeric page or
// id); surfaced as 422.
var errInvalidParams = errors.New("invalid request parameters")

// listParams turns the page/search/order_by query parameters into a
// validated clause and paginator for the given kind.
func listParams(c echo.Context, desc resource.Descriptor, perPage int) (query.Clause, *query.Paginator, error) {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return query.Clause{}, nil, errInvalidParams
		}
		page = n // out-of-range values are clamped by the paginator
	}

	var search *string
	if vs, ok := c.QueryParams()["search"]; ok && len(vs) > 0 {
		search = &vs[0]
	}

	clause := query.BuildFilter(desc, search, query.ParseOrderTokens(c.QueryParam("order_by")))
	requestURL := c.Scheme() + "://" + c.Request().Host + c.Request().RequestURI
	return clause, query.NewPaginator(page, perPage, requestURL), nil
}

// pathID parses the numeric id path parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errInvalidParams
	}
	return id, nil
}
