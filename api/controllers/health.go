package controllers

import (
	"context"
	"net/http"

	"github.com/litera-id/litera-backend/api/responses"
	"github.com/litera-id/litera-backend/pkg/config"
	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Litera-Env", cfg.App.Env)
		responses.WriteSuccess(w, "live", map[string]string{"status": "live"})
	}
}

// HealthReady probes the database and Redis before reporting ready.
func HealthReady(cfg *config.Config, db, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Litera-Env", cfg.App.Env)

		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, "ready", map[string]string{"status": "ready"})
	}
}
