package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vowsuite/pkg/config"
	apperrors "vowsuite/pkg/errors"
	"vowsuite/pkg/logger"
	"vowsuite/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockOrderService struct {
	requestBookingFn func(ctx context.Context, req *model.CreateOrderRequest) (string, error)
	setStatusFn      func(ctx context.Context, id string, status string) (*model.Order, error)
	getByIDFn        func(ctx context.Context, id string) (*model.Order, error)
	listByVenueFn    func(ctx context.Context, venueID string) ([]*model.Order, error)
}

func (m *mockOrderService) RequestBooking(ctx context.Context, req *model.CreateOrderRequest) (string, error) {
	return m.requestBookingFn(ctx, req)
}

func (m *mockOrderService) SetStatus(ctx context.Context, id string, status string) (*model.Order, error) {
	return m.setStatusFn(ctx, id, status)
}

func (m *mockOrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockOrderService) ListByVenue(ctx context.Context, venueID string) ([]*model.Order, error) {
	return m.listByVenueFn(ctx, venueID)
}

func (m *mockOrderService) ListByCompany(ctx context.Context, companyID string) ([]*model.Order, error) {
	return nil, nil
}

func (m *mockOrderService) ListByCustomer(ctx context.Context, customerID string) ([]*model.Order, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.LevelError,
			Format:  logger.FormatText,
			Service: "orders-test",
		}),
	}
}

func newRouter(svc *mockOrderService) *httprouter.Router {
	router := httprouter.New()
	NewOrderHandler(testConfig(), svc).RegisterRoutes(router)
	return router
}

func TestCreate_Success(t *testing.T) {
	svc := &mockOrderService{
		requestBookingFn: func(ctx context.Context, req *model.CreateOrderRequest) (string, error) {
			return "65f000000000000000000001", nil
		},
	}
	router := newRouter(svc)

	body := `{
		"customerID": "cust-1",
		"venueID": "venue-1",
		"companyID": "comp-1",
		"eventID": "event-1",
		"startAt": "2024-07-10T10:00:00Z",
		"endAt": "2024-07-11T10:00:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		OK      bool   `json:"ok"`
		OrderID string `json:"orderID"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.OK {
		t.Error("expected ok=true")
	}
	if resp.OrderID != "65f000000000000000000001" {
		t.Errorf("orderID = %q", resp.OrderID)
	}
}

func TestCreate_MissingFields(t *testing.T) {
	svc := &mockOrderService{
		requestBookingFn: func(ctx context.Context, req *model.CreateOrderRequest) (string, error) {
			return "", apperrors.InvalidInput("Missing required fields")
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"customerID":"cust-1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Missing required fields" {
		t.Errorf("error = %q, want %q", resp.Error, "Missing required fields")
	}
}

func TestCreate_VenueUnavailable(t *testing.T) {
	unavailable := "Sorry, this venue is not available on your wedding date ±1 day. Choose a different date or venue."
	svc := &mockOrderService{
		requestBookingFn: func(ctx context.Context, req *model.CreateOrderRequest) (string, error) {
			return "", apperrors.VenueUnavailable(unavailable)
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != unavailable {
		t.Errorf("error = %q, want the availability message", resp.Error)
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	svc := &mockOrderService{
		requestBookingFn: func(ctx context.Context, req *model.CreateOrderRequest) (string, error) {
			t.Fatal("service should not be called for malformed body")
			return "", nil
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSetStatus_Success(t *testing.T) {
	svc := &mockOrderService{
		setStatusFn: func(ctx context.Context, id string, status string) (*model.Order, error) {
			return &model.Order{
				ID:         id,
				CustomerID: "cust-1",
				Status:     status,
			}, nil
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPut,
		"/api/v1/orders/id/65f000000000000000000001/status",
		strings.NewReader(`{"status":"accepted"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		OK      bool   `json:"ok"`
		OrderID string `json:"orderID"`
		Status  string `json:"status"`
		To      string `json:"to"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.OK || resp.OrderID != "65f000000000000000000001" || resp.Status != "accepted" || resp.To != "cust-1" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	svc := &mockOrderService{
		setStatusFn: func(ctx context.Context, id string, status string) (*model.Order, error) {
			return nil, apperrors.InvalidStatus("Invalid status")
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPut,
		"/api/v1/orders/id/65f000000000000000000001/status",
		strings.NewReader(`{"status":"cancelled"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Invalid status" {
		t.Errorf("error = %q, want %q", resp.Error, "Invalid status")
	}
}

func TestSetStatus_NotFound(t *testing.T) {
	svc := &mockOrderService{
		setStatusFn: func(ctx context.Context, id string, status string) (*model.Order, error) {
			return nil, apperrors.NotFoundWithID("Order", id)
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPut,
		"/api/v1/orders/id/65f0000000000000000000ff/status",
		strings.NewReader(`{"status":"rejected"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Order not found" {
		t.Errorf("error = %q, want %q", resp.Error, "Order not found")
	}
}

func TestListByVenue_Success(t *testing.T) {
	svc := &mockOrderService{
		listByVenueFn: func(ctx context.Context, venueID string) ([]*model.Order, error) {
			return []*model.Order{
				{ID: "a", VenueID: venueID, Status: model.StatusPending},
			}, nil
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/venue/venue-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var orders []model.Order
	if err := json.NewDecoder(rec.Body).Decode(&orders); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(orders) != 1 || orders[0].VenueID != "venue-1" {
		t.Errorf("unexpected listing: %+v", orders)
	}
}
