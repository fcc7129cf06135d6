package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/litera-id/litera-backend/api/middleware"
	"github.com/litera-id/litera-backend/api/responses"
	achievementsvc "github.com/litera-id/litera-backend/internal/achievements"
	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/logger"
)

// ListAchievements returns the caller's earned milestones.
func ListAchievements(svc achievementsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "achievement service unavailable"))
			return
		}

		userID := middleware.UserUUIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		achievements, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "achievements", achievements)
	}
}
