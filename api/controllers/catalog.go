package controllers

import (
	"net/http"

	"github.com/hanifwidodo/merchorder-backend/api/responses"
	"github.com/hanifwidodo/merchorder-backend/internal/catalog"
)

// Catalog serves the full price list so clients can render the order
// form without hardcoding prices.
func Catalog(c *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, c)
	}
}
