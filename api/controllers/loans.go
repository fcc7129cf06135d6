package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/litera-id/litera-backend/api/middleware"
	"github.com/litera-id/litera-backend/api/responses"
	"github.com/litera-id/litera-backend/api/validators"
	loansvc "github.com/litera-id/litera-backend/internal/loans"
	"github.com/litera-id/litera-backend/pkg/enums"
	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/logger"
)

// ListLoans returns one page of loans scoped by the caller's role.
func ListLoans(svc loansvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loan service unavailable"))
			return
		}

		actor, err := loanActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := loansvc.ListFilters{
			ISBN: validators.SanitizeString(r.URL.Query().Get("isbn"), 13),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseLoanStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter").
					WithDetails(map[string][]string{"status": {"is invalid"}}))
				return
			}
			filters.Status = &status
		}

		loans, meta, err := svc.ListLoans(r.Context(), actor, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, "loans", loans, meta)
	}
}

type createLoanRequest struct {
	ISBN  string `json:"isbn" validate:"required,len=13,numeric"`
	Qty   int    `json:"qty" validate:"required,min=1"`
	Notes string `json:"notes"`
}

// CreateLoan opens a borrowing request for the caller.
func CreateLoan(svc loansvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loan service unavailable"))
			return
		}

		actor, err := loanActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createLoanRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		loan, err := svc.CreateLoan(r.Context(), actor, loansvc.CreateLoanInput{
			ISBN:  payload.ISBN,
			Qty:   payload.Qty,
			Notes: payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "loan requested", loan)
	}
}

// GetLoan returns a single loan visible to the caller.
func GetLoan(svc loansvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loan service unavailable"))
			return
		}

		actor, err := loanActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := loanIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		loan, err := svc.GetLoan(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "loan", loan)
	}
}

type updateLoanRequest struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
	Qty    *int    `json:"qty,omitempty" validate:"omitempty,min=1"`
}

// UpdateLoan patches a loan's status, notes, or quantity.
func UpdateLoan(svc loansvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loan service unavailable"))
			return
		}

		actor, err := loanActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := loanIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateLoanRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := loansvc.UpdateLoanInput{
			Notes: payload.Notes,
			Qty:   payload.Qty,
		}
		if payload.Status != nil {
			status, err := enums.ParseLoanStatus(strings.TrimSpace(*payload.Status))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid loan status").
					WithDetails(map[string][]string{"status": {"is invalid"}}))
				return
			}
			input.Status = &status
		}

		loan, err := svc.UpdateLoan(r.Context(), actor, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "loan updated", loan)
	}
}

// DeleteLoan soft-deletes a loan.
func DeleteLoan(svc loansvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loan service unavailable"))
			return
		}

		id, err := loanIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteLoan(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "loan deleted", nil)
	}
}

func loanActor(r *http.Request) (loansvc.Actor, error) {
	userID := middleware.UserUUIDFromContext(r.Context())
	if userID == uuid.Nil {
		return loansvc.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return loansvc.Actor{
		ID:   userID,
		Role: middleware.RoleFromContext(r.Context()),
	}, nil
}

func loanIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid loan id").
			WithDetails(map[string][]string{"id": {"must be a valid uuid"}})
	}
	return id, nil
}
