package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hanifwidodo/merchorder-backend/api/responses"
	"github.com/hanifwidodo/merchorder-backend/internal/adminfeed"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
	"github.com/hanifwidodo/merchorder-backend/pkg/logger"
)

type adminFeedView struct {
	State  string                `json:"state"`
	Orders []adminfeed.OrderView `json:"orders"`
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return id, nil
}

// AdminOrders returns the feed state and the current snapshot with
// delete marks applied.
func AdminOrders(feed *adminfeed.Feed, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, adminFeedView{
			State:  string(feed.State()),
			Orders: feed.Snapshot(),
		})
	}
}

// AdminOrderRequestDelete marks one order for deletion; confirming a
// different order later is rejected.
func AdminOrderRequestDelete(feed *adminfeed.Feed, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := feed.RequestDelete(id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "awaiting_confirmation", "orderId": id.String()})
	}
}

// AdminOrderConfirmDelete deletes the previously marked order.
func AdminOrderConfirmDelete(feed *adminfeed.Feed, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := feed.ConfirmDelete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted", "orderId": id.String()})
	}
}

// AdminOrderCancelDelete clears any pending delete mark. Cancelling
// when nothing is marked is a no-op, not an error.
func AdminOrderCancelDelete(feed *adminfeed.Feed, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feed.CancelDelete()
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}
