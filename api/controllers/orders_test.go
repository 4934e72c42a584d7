package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/hanifwidodo/merchorder-backend/api/middleware"
	"github.com/hanifwidodo/merchorder-backend/internal/orders"
	"github.com/hanifwidodo/merchorder-backend/internal/pricing"
	"github.com/hanifwidodo/merchorder-backend/pkg/db/models"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
	"github.com/hanifwidodo/merchorder-backend/pkg/types"
)

type stubOrdersService struct {
	quote     pricing.Quote
	quoteErr  error
	order     *models.Order
	submitErr error
	lastInput orders.SubmitInput
}

func (s *stubOrdersService) Estimate(ctx context.Context, sel types.Selection) (pricing.Quote, error) {
	return s.quote, s.quoteErr
}

func (s *stubOrdersService) Submit(ctx context.Context, input orders.SubmitInput) (*models.Order, error) {
	s.lastInput = input
	return s.order, s.submitErr
}

func (s *stubOrdersService) ListAll(ctx context.Context) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrdersService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func withSession(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
}

func TestOrdersEstimate(t *testing.T) {
	svc := &stubOrdersService{quote: pricing.Quote{TotalItems: 3, TotalPrice: 265000}}
	handler := OrdersEstimate(svc, nil)

	body := `{"selection":{"garmentQuantities":{"polo":{"M":3}},"sleeveCounts":{"polo":{"long":2,"ruffled":0}},"accessoryQuantities":{}}}`
	req := httptest.NewRequest(http.MethodPost, "/orders/estimate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	payload := envelope.Data.(map[string]any)
	if payload["totalPrice"].(float64) != 265000 {
		t.Fatalf("total price = %v", payload["totalPrice"])
	}
}

func TestOrdersSubmit(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrdersService{order: &models.Order{ID: orderID, TotalItems: 3, TotalPrice: 265000}}
	handler := OrdersSubmit(svc, nil)

	body := `{"name":"Budi","region":"Jakarta","selection":{"garmentQuantities":{"polo":{"M":3}},"sleeveCounts":{},"accessoryQuantities":{}}}`
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = withSession(req, "sess-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastInput.SessionID != "sess-1" {
		t.Fatalf("session id = %q", svc.lastInput.SessionID)
	}
	if svc.lastInput.Name != "Budi" || svc.lastInput.Region != "Jakarta" {
		t.Fatalf("identity = %q / %q", svc.lastInput.Name, svc.lastInput.Region)
	}
}

func TestOrdersSubmitWithoutSession(t *testing.T) {
	svc := &stubOrdersService{}
	handler := OrdersSubmit(svc, nil)

	body := `{"name":"Budi","region":"Jakarta","selection":{}}`
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestOrdersSubmitMissingName(t *testing.T) {
	svc := &stubOrdersService{}
	handler := OrdersSubmit(svc, nil)

	body := `{"region":"Jakarta","selection":{"garmentQuantities":{},"sleeveCounts":{},"accessoryQuantities":{}}}`
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = withSession(req, "sess-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOrdersSubmitConflictPassthrough(t *testing.T) {
	svc := &stubOrdersService{submitErr: pkgerrors.New(pkgerrors.CodeConflict, "an order submission is already in progress")}
	handler := OrdersSubmit(svc, nil)

	body := `{"name":"Budi","region":"Jakarta","selection":{"garmentQuantities":{"polo":{"M":1}},"sleeveCounts":{},"accessoryQuantities":{}}}`
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = withSession(req, "sess-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}
