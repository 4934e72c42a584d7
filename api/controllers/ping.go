package controllers

import (
	"net/http"

	"github.com/hanifwidodo/merchorder-backend/api/middleware"
	"github.com/hanifwidodo/merchorder-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if sid := middleware.SessionIDFromContext(r.Context()); sid != "" {
			payload["session_id"] = sid
		}
		responses.WriteSuccess(w, payload)
	}
}
