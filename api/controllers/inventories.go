package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/litera-id/litera-backend/api/middleware"
	"github.com/litera-id/litera-backend/api/responses"
	"github.com/litera-id/litera-backend/api/validators"
	inventorysvc "github.com/litera-id/litera-backend/internal/inventory"
	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/logger"
)

// ListInventories returns one page of the stock movement audit.
func ListInventories(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters := inventorysvc.ListFilters{
			ISBN: validators.SanitizeString(r.URL.Query().Get("isbn"), 13),
		}

		entries, meta, err := svc.ListEntries(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, "inventory entries", entries, meta)
	}
}

type adjustInventoryRequest struct {
	ISBN  string `json:"isbn" validate:"required,len=13,numeric"`
	Delta int    `json:"delta" validate:"required"`
}

// AdjustInventory applies a manual stock delta with an audit entry.
func AdjustInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		actorID := middleware.UserUUIDFromContext(r.Context())
		if actorID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload adjustInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Adjust(r.Context(), actorID, inventorysvc.AdjustInput{
			ISBN:  payload.ISBN,
			Delta: payload.Delta,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "stock adjusted", entry)
	}
}
