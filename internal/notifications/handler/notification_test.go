package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vowsuite/pkg/config"
	apperrors "vowsuite/pkg/errors"
	"vowsuite/pkg/logger"
	"vowsuite/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockNotificationService struct {
	listForUserFn func(ctx context.Context, userID string, unreadOnly bool) ([]*model.Notification, error)
	markReadFn    func(ctx context.Context, id string) error
}

func (m *mockNotificationService) Record(ctx context.Context, notification *model.Notification) error {
	return nil
}

func (m *mockNotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*model.Notification, error) {
	return m.listForUserFn(ctx, userID, unreadOnly)
}

func (m *mockNotificationService) MarkRead(ctx context.Context, id string) error {
	return m.markReadFn(ctx, id)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.LevelError,
			Format:  logger.FormatText,
			Service: "notifications-test",
		}),
	}
}

func newRouter(svc *mockNotificationService) *httprouter.Router {
	router := httprouter.New()
	NewNotificationHandler(testConfig(), svc).RegisterRoutes(router)
	return router
}

func TestListForUser(t *testing.T) {
	var gotUnreadOnly bool
	svc := &mockNotificationService{
		listForUserFn: func(ctx context.Context, userID string, unreadOnly bool) ([]*model.Notification, error) {
			gotUnreadOnly = unreadOnly
			return []*model.Notification{
				{ID: "65f000000000000000000002", To: userID, Message: "accepted", Read: false},
			}, nil
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/user/cust-1?unread=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !gotUnreadOnly {
		t.Error("unread query parameter not forwarded")
	}

	var notifications []model.Notification
	if err := json.NewDecoder(rec.Body).Decode(&notifications); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(notifications) != 1 || notifications[0].To != "cust-1" {
		t.Errorf("unexpected listing: %+v", notifications)
	}
}

func TestMarkRead_Success(t *testing.T) {
	svc := &mockNotificationService{
		markReadFn: func(ctx context.Context, id string) error {
			if id != "65f000000000000000000002" {
				t.Errorf("mark read id = %q", id)
			}
			return nil
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/notifications/id/65f000000000000000000002/read", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestMarkRead_NotFound(t *testing.T) {
	svc := &mockNotificationService{
		markReadFn: func(ctx context.Context, id string) error {
			return apperrors.NotFoundWithID("Notification", id)
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/notifications/id/65f0000000000000000000ff/read", nil)
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
	if resp.Error != "Notification not found" {
		t.Errorf("error = %q, want %q", resp.Error, "Notification not found")
	}
}
