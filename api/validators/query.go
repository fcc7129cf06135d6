package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/pagination"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
			WithDetails(map[string][]string{key: {"must be numeric"}})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithDetails(map[string][]string{key: {"is out of range"}})
	}
	return value, nil
}

// ParsePagination reads page, limit, order_by, and sort from the query
// string with defaulting and range checks.
func ParsePagination(r *http.Request) (pagination.Params, error) {
	page, err := ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}

	sort := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sort")))
	switch sort {
	case "", "asc", "desc":
	default:
		return pagination.Params{}, pkgerrors.New(pkgerrors.CodeValidation, "sort must be asc or desc").
			WithDetails(map[string][]string{"sort": {"must be asc or desc"}})
	}

	params := pagination.Params{
		Page:    page,
		Limit:   limit,
		OrderBy: strings.TrimSpace(r.URL.Query().Get("order_by")),
		Sort:    sort,
	}
	return params.Normalize(), nil
}
