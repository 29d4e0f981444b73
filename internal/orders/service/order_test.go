package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	orderserrors "vowsuite/internal/orders/errors"
	"vowsuite/pkg/config"
	apperrors "vowsuite/pkg/errors"
	"vowsuite/pkg/logger"
	"vowsuite/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockOrderRepository struct {
	createFn         func(ctx context.Context, order *model.Order) error
	findByIDFn       func(ctx context.Context, id string) (*model.Order, error)
	findByVenueFn    func(ctx context.Context, venueID string) ([]*model.Order, error)
	findByCompanyFn  func(ctx context.Context, companyID string) ([]*model.Order, error)
	findByCustomerFn func(ctx context.Context, customerID string) ([]*model.Order, error)
	updateStatusFn   func(ctx context.Context, id string, status string) (*mongo.UpdateResult, error)
	deleteFn         func(ctx context.Context, id string) error

	createCalls int
	updateCalls int
	deleteCalls int
}

func (m *mockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, order)
	}
	order.ID = "65f000000000000000000001"
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, orderserrors.ErrNotFound
}

func (m *mockOrderRepository) FindByVenue(ctx context.Context, venueID string) ([]*model.Order, error) {
	if m.findByVenueFn != nil {
		return m.findByVenueFn(ctx, venueID)
	}
	return nil, nil
}

func (m *mockOrderRepository) FindByCompany(ctx context.Context, companyID string) ([]*model.Order, error) {
	if m.findByCompanyFn != nil {
		return m.findByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (m *mockOrderRepository) FindByCustomer(ctx context.Context, customerID string) ([]*model.Order, error) {
	if m.findByCustomerFn != nil {
		return m.findByCustomerFn(ctx, customerID)
	}
	return nil, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id string, status string) (*mongo.UpdateResult, error) {
	m.updateCalls++
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockOrderRepository) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockOrderRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockLockRepository struct {
	acquireFn func(ctx context.Context, venueID string, ttl time.Duration) error
	releaseFn func(ctx context.Context, venueID string) error
}

func (m *mockLockRepository) Acquire(ctx context.Context, venueID string, ttl time.Duration) error {
	if m.acquireFn != nil {
		return m.acquireFn(ctx, venueID, ttl)
	}
	return nil
}

func (m *mockLockRepository) Release(ctx context.Context, venueID string) error {
	if m.releaseFn != nil {
		return m.releaseFn(ctx, venueID)
	}
	return nil
}

type mockSink struct {
	sendFn func(ctx context.Context, notification *model.Notification) error
	sent   []*model.Notification
}

func (m *mockSink) Send(ctx context.Context, notification *model.Notification) error {
	m.sent = append(m.sent, notification)
	if m.sendFn != nil {
		return m.sendFn(ctx, notification)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.LevelError,
			Format:  logger.FormatText,
			Service: "orders-test",
		}),
		MaxNoteLength:  2000,
		VenueLockTTL:   10 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		RequestTimeout: 10 * time.Second,
	}
}

func validCreateRequest() *model.CreateOrderRequest {
	return &model.CreateOrderRequest{
		CustomerID: "cust-1",
		VenueID:    "venue-1",
		CompanyID:  "comp-1",
		EventID:    "event-1",
		StartAt:    time.Date(2024, 7, 10, 10, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2024, 7, 11, 10, 0, 0, 0, time.UTC),
		Note:       "  outdoor   ceremony  ",
	}
}

func TestRequestBooking_AdmitsOnEmptyVenue(t *testing.T) {
	repo := &mockOrderRepository{}
	sink := &mockSink{}
	svc := NewOrderService(testConfig(), repo, &mockLockRepository{}, sink)

	var created *model.Order
	repo.createFn = func(ctx context.Context, order *model.Order) error {
		order.ID = "65f000000000000000000001"
		created = order
		return nil
	}

	orderID, err := svc.RequestBooking(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID == "" {
		t.Error("expected an assigned order ID")
	}
	if created == nil {
		t.Fatal("expected order to be persisted")
	}
	if created.Status != model.StatusPending {
		t.Errorf("created order status = %q, want %q", created.Status, model.StatusPending)
	}
	if created.Note != "outdoor ceremony" {
		t.Errorf("note not normalized, got %q", created.Note)
	}
	if len(sink.sent) != 0 {
		t.Errorf("admission should not notify, got %d notifications", len(sink.sent))
	}
}

func TestRequestBooking_MissingFieldSkipsStore(t *testing.T) {
	repo := &mockOrderRepository{}
	svc := NewOrderService(testConfig(), repo, &mockLockRepository{}, &mockSink{})

	req := validCreateRequest()
	req.VenueID = ""

	_, err := svc.RequestBooking(context.Background(), req)
	if err == nil {
		t.Fatal("expected error for missing venueID")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeInvalidInput)
	}
	if appErr.Message != "Missing required fields" {
		t.Errorf("error message = %q, want %q", appErr.Message, "Missing required fields")
	}
	if repo.createCalls != 0 {
		t.Errorf("store insert called %d times, want 0", repo.createCalls)
	}
}

func TestRequestBooking_ConflictRejected(t *testing.T) {
	repo := &mockOrderRepository{
		findByVenueFn: func(ctx context.Context, venueID string) ([]*model.Order, error) {
			return []*model.Order{{
				Status:  model.StatusAccepted,
				StartAt: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
				EndAt:   time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC),
			}}, nil
		},
	}
	svc := NewOrderService(testConfig(), repo, &mockLockRepository{}, &mockSink{})

	req := validCreateRequest()
	req.StartAt = time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	req.EndAt = time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC)

	_, err := svc.RequestBooking(context.Background(), req)
	if err == nil {
		t.Fatal("expected VenueUnavailable error")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeVenueUnavailable {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeVenueUnavailable)
	}
	if appErr.StatusCode() != 400 {
		t.Errorf("HTTP status = %d, want 400", appErr.StatusCode())
	}
	if appErr.Message != venueUnavailableMessage {
		t.Errorf("error message = %q, want the caller-facing availability message", appErr.Message)
	}
	if repo.createCalls != 0 {
		t.Errorf("store insert called %d times, want 0", repo.createCalls)
	}
}

func TestRequestBooking_LockHeldConflicts(t *testing.T) {
	cfg := testConfig()
	cfg.VenueLockEnabled = true

	locks := &mockLockRepository{
		acquireFn: func(ctx context.Context, venueID string, ttl time.Duration) error {
			return orderserrors.ErrLockHeld
		},
	}
	repo := &mockOrderRepository{}
	svc := NewOrderService(cfg, repo, locks, &mockSink{})

	_, err := svc.RequestBooking(context.Background(), validCreateRequest())
	if err == nil {
		t.Fatal("expected conflict while lock is held")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeConflict)
	}
	if repo.createCalls != 0 {
		t.Errorf("store insert called %d times, want 0", repo.createCalls)
	}
}

func TestRequestBooking_ReleasesLockAfterAdmission(t *testing.T) {
	cfg := testConfig()
	cfg.VenueLockEnabled = true

	released := ""
	locks := &mockLockRepository{
		releaseFn: func(ctx context.Context, venueID string) error {
			released = venueID
			return nil
		},
	}
	svc := NewOrderService(cfg, &mockOrderRepository{}, locks, &mockSink{})

	if _, err := svc.RequestBooking(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if released != "venue-1" {
		t.Errorf("lock released for %q, want venue-1", released)
	}
}

func pendingOrder() *model.Order {
	return &model.Order{
		ID:         "65f000000000000000000001",
		CompanyID:  "comp-1",
		CustomerID: "cust-1",
		VenueID:    "venue-1",
		EventID:    "event-1",
		StartAt:    time.Date(2024, 7, 10, 10, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2024, 7, 11, 10, 0, 0, 0, time.UTC),
		Status:     model.StatusPending,
	}
}

func TestSetStatus_AcceptPersistsAndNotifies(t *testing.T) {
	repo := &mockOrderRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.Order, error) {
			return pendingOrder(), nil
		},
	}
	sink := &mockSink{}
	svc := NewOrderService(testConfig(), repo, &mockLockRepository{}, sink)

	order, err := svc.SetStatus(context.Background(), "65f000000000000000000001", model.StatusAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.StatusAccepted {
		t.Errorf("order status = %q, want accepted", order.Status)
	}
	if repo.updateCalls != 1 || repo.deleteCalls != 0 {
		t.Errorf("update/delete calls = %d/%d, want 1/0", repo.updateCalls, repo.deleteCalls)
	}
	if len(sink.sent) != 1 {
		t.Fatalf("notifications sent = %d, want 1", len(sink.sent))
	}
	if sink.sent[0].To != "cust-1" {
		t.Errorf("notification to = %q, want cust-1", sink.sent[0].To)
	}
	if !strings.Contains(sink.sent[0].Message, "accepted") {
		t.Errorf("notification message %q should contain the decision word", sink.sent[0].Message)
	}
}

func TestSetStatus_RejectDeletesAndNotifies(t *testing.T) {
	repo := &mockOrderRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.Order, error) {
			return pendingOrder(), nil
		},
	}
	sink := &mockSink{}
	svc := NewOrderService(testConfig(), repo, &mockLockRepository{}, sink)

	_, err := svc.SetStatus(context.Background(), "65f000000000000000000001", model.StatusRejected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deleteCalls != 1 || repo.updateCalls != 0 {
		t.Errorf("delete/update calls = %d/%d, want 1/0", repo.deleteCalls, repo.updateCalls)
	}
	if len(sink.sent) != 1 {
		t.Fatalf("notifications sent = %d, want 1", len(sink.sent))
	}
	if !strings.Contains(sink.sent[0].Message, "rejected") {
		t.Errorf("notification message %q should contain the decision word", sink.sent[0].Message)
	}
}

func TestSetStatus_InvalidStatusRejected(t *testing.T) {
	repo := &mockOrderRepository{}
	sink := &mockSink{}
	svc := NewOrderService(testConfig(), repo, &mockLockRepository{}, sink)

	_, err := svc.SetStatus(context.Background(), "65f000000000000000000001", "cancelled")
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidStatus {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeInvalidStatus)
	}
	if len(sink.sent) != 0 {
		t.Errorf("notifications sent = %d, want 0", len(sink.sent))
	}
}

func TestSetStatus_UnknownIDNotFound(t *testing.T) {
	repo := &mockOrderRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.Order, error) {
			return nil, orderserrors.ErrNotFound
		},
	}
	sink := &mockSink{}
	svc := NewOrderService(testConfig(), repo, &mockLockRepository{}, sink)

	_, err := svc.SetStatus(context.Background(), "65f0000000000000000000ff", model.StatusAccepted)
	if err == nil {
		t.Fatal("expected NotFound error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeNotFound)
	}
	if len(sink.sent) != 0 {
		t.Errorf("notifications sent = %d, want 0", len(sink.sent))
	}
}

// The second rejection of the same id finds nothing: the record was
// deleted by the first. That NotFound is expected, not suppressed.
func TestSetStatus_SecondRejectNotFound(t *testing.T) {
	deleted := false
	repo := &mockOrderRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.Order, error) {
			if deleted {
				return nil, orderserrors.ErrNotFound
			}
			return pendingOrder(), nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	sink := &mockSink{}
	svc := NewOrderService(testConfig(), repo, &mockLockRepository{}, sink)

	if _, err := svc.SetStatus(context.Background(), "65f000000000000000000001", model.StatusRejected); err != nil {
		t.Fatalf("first rejection failed: %v", err)
	}

	_, err := svc.SetStatus(context.Background(), "65f000000000000000000001", model.StatusRejected)
	if err == nil {
		t.Fatal("expected NotFound on second rejection")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeNotFound)
	}
	if len(sink.sent) != 1 {
		t.Errorf("notifications sent = %d, want 1", len(sink.sent))
	}
}

func TestSetStatus_NotifiesEvenWhenPersistenceFails(t *testing.T) {
	repo := &mockOrderRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.Order, error) {
			return pendingOrder(), nil
		},
		updateStatusFn: func(ctx context.Context, id string, status string) (*mongo.UpdateResult, error) {
			return nil, errors.New("write concern failure")
		},
	}
	sink := &mockSink{}
	svc := NewOrderService(testConfig(), repo, &mockLockRepository{}, sink)

	_, err := svc.SetStatus(context.Background(), "65f000000000000000000001", model.StatusAccepted)
	if err == nil {
		t.Fatal("expected persistence error to propagate")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInternal {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeInternal)
	}
	if len(sink.sent) != 1 {
		t.Errorf("notifications sent = %d, want 1 even when persistence failed", len(sink.sent))
	}
}

func TestSetStatus_SinkFailurePropagates(t *testing.T) {
	repo := &mockOrderRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.Order, error) {
			return pendingOrder(), nil
		},
	}
	sink := &mockSink{
		sendFn: func(ctx context.Context, notification *model.Notification) error {
			return errors.New("broker unreachable")
		},
	}
	svc := NewOrderService(testConfig(), repo, &mockLockRepository{}, sink)

	_, err := svc.SetStatus(context.Background(), "65f000000000000000000001", model.StatusAccepted)
	if err == nil {
		t.Fatal("expected sink error to propagate")
	}
	if repo.updateCalls != 1 {
		t.Errorf("update calls = %d, want 1 (no rollback)", repo.updateCalls)
	}
}

func TestListByVenue_SortedByStatusPrecedence(t *testing.T) {
	repo := &mockOrderRepository{
		findByVenueFn: func(ctx context.Context, venueID string) ([]*model.Order, error) {
			return []*model.Order{
				{ID: "a", Status: model.StatusAccepted},
				{ID: "b", Status: model.StatusPending},
				{ID: "c", Status: model.StatusAccepted},
				{ID: "d", Status: model.StatusPending},
			}, nil
		},
	}
	svc := NewOrderService(testConfig(), repo, &mockLockRepository{}, &mockSink{})

	orders, err := svc.ListByVenue(context.Background(), "venue-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotIDs := make([]string, len(orders))
	for i, o := range orders {
		gotIDs[i] = o.ID
	}
	want := []string{"b", "d", "a", "c"}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("listing order = %v, want %v", gotIDs, want)
		}
	}
}
