package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/hanifwidodo/merchorder-backend/pkg/auth"
	"github.com/hanifwidodo/merchorder-backend/pkg/config"
)

type stubChecker struct {
	has bool
	err error
}

func (s *stubChecker) HasSession(ctx context.Context, sessionID string) (bool, error) {
	return s.has, s.err
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{Secret: "secret", Issuer: "merchorder", ExpirationMinutes: 10}
}

func authedHandler(t *testing.T, checker *stubChecker) (http.Handler, *string) {
	t.Helper()
	var seenSession string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSession = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Auth(testSessionConfig(), checker, nil)(next), &seenSession
}

func mintToken(t *testing.T, sessionID string) string {
	t.Helper()
	token, err := pkgauth.MintSessionToken(testSessionConfig(), time.Now(), pkgauth.SessionTokenPayload{SessionID: sessionID})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthAcceptsValidToken(t *testing.T) {
	handler, seen := authedHandler(t, &stubChecker{has: true})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "sess-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if *seen != "sess-1" {
		t.Fatalf("session id = %q", *seen)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler, _ := authedHandler(t, &stubChecker{has: true})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler, _ := authedHandler(t, &stubChecker{has: true})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	handler, _ := authedHandler(t, &stubChecker{has: false})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "sess-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthSessionCheckFailure(t *testing.T) {
	handler, _ := authedHandler(t, &stubChecker{err: errors.New("redis down")})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "sess-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}
