package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/hanifwidodo/merchorder-backend/api/responses"
	pkgauth "github.com/hanifwidodo/merchorder-backend/pkg/auth"
	"github.com/hanifwidodo/merchorder-backend/pkg/config"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
	"github.com/hanifwidodo/merchorder-backend/pkg/logger"
)

type sessionStarter interface {
	Begin(ctx context.Context) (string, error)
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionStart opens an anonymous session and returns its bearer
// token. No credentials are involved; the session exists so submits
// can be throttled and deduplicated per visitor.
func SessionStart(manager sessionStarter, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		sessionID, err := manager.Begin(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "begin session"))
			return
		}

		now := time.Now().UTC()
		token, err := pkgauth.MintSessionToken(cfg, now, pkgauth.SessionTokenPayload{SessionID: sessionID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sessionResponse{
			Token:     token,
			ExpiresAt: now.Add(cfg.TTL()),
		})
	}
}
