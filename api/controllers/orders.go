package controllers

import (
	"net/http"

	"github.com/hanifwidodo/merchorder-backend/api/middleware"
	"github.com/hanifwidodo/merchorder-backend/api/responses"
	"github.com/hanifwidodo/merchorder-backend/api/validators"
	"github.com/hanifwidodo/merchorder-backend/internal/orders"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
	"github.com/hanifwidodo/merchorder-backend/pkg/logger"
	"github.com/hanifwidodo/merchorder-backend/pkg/types"
)

type estimateRequest struct {
	Selection types.Selection `json:"selection" validate:"required"`
}

type submitRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=120"`
	Region    string          `json:"region" validate:"required,min=1,max=120"`
	Selection types.Selection `json:"selection" validate:"required"`
}

// OrdersEstimate prices a selection without persisting it, so clients
// can show a running total while the visitor edits quantities.
func OrdersEstimate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body estimateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Estimate(r.Context(), body.Selection)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// OrdersSubmit persists a completed draft as a new order.
func OrdersSubmit(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}

		var body submitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Submit(r.Context(), orders.SubmitInput{
			SessionID: sessionID,
			Name:      body.Name,
			Region:    body.Region,
			Selection: body.Selection,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
