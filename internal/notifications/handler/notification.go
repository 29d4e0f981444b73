package handler

import (
	"net/http"

	"vowsuite/internal/notifications/service"
	"vowsuite/pkg/config"
	apperrors "vowsuite/pkg/errors"
	pkghttp "vowsuite/pkg/http"

	"github.com/julienschmidt/httprouter"
)

type NotificationHandler struct {
	cfg     *config.Config
	service service.NotificationService
}

func NewNotificationHandler(cfg *config.Config, svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		cfg:     cfg,
		service: svc,
	}
}

func (h *NotificationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/notifications/user/:id", h.ListForUser)
	router.PATCH("/api/v1/notifications/id/:id/read", h.MarkRead)
}

func (h *NotificationHandler) ListForUser(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.service.ListForUser(r.Context(), params.ByName("id"), unreadOnly)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := pkghttp.WriteJSON(w, http.StatusOK, notifications); err != nil {
		h.cfg.Log.Error("Failed to write response", "path", r.URL.Path, "error", err)
	}
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	if err := h.service.MarkRead(r.Context(), params.ByName("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	pkghttp.WriteNoContent(w)
}

func (h *NotificationHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.cfg.Log.Error("Request failed", "path", r.URL.Path, "error", appErr)
	}
	if writeErr := pkghttp.WriteError(w, appErr); writeErr != nil {
		h.cfg.Log.Error("Failed to write error response", "path", r.URL.Path, "error", writeErr)
	}
}
