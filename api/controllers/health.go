package controllers

import (
	"context"
	"net/http"

	"github.com/hanifwidodo/merchorder-backend/api/responses"
	"github.com/hanifwidodo/merchorder-backend/pkg/config"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
	"github.com/hanifwidodo/merchorder-backend/pkg/logger"
	"go.uber.org/multierr"
)

// Pinger is any dependency that can report its own connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MerchOrder-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every registered dependency
// answers its ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MerchOrder-Env", cfg.App.Env)

		var errs error
		statuses := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				statuses[name] = "down"
				errs = multierr.Append(errs, err)
				continue
			}
			statuses[name] = "up"
		}

		if errs != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "dependencies unavailable").WithDetails(statuses))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": statuses})
	}
}
