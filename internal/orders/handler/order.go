package handler

import (
	"encoding/json"
	"net/http"

	"vowsuite/internal/orders/service"
	"vowsuite/pkg/config"
	apperrors "vowsuite/pkg/errors"
	pkghttp "vowsuite/pkg/http"
	"vowsuite/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type OrderHandler struct {
	cfg     *config.Config
	service service.OrderService
}

func NewOrderHandler(cfg *config.Config, svc service.OrderService) *OrderHandler {
	return &OrderHandler{
		cfg:     cfg,
		service: svc,
	}
}

func (h *OrderHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/orders", h.Create)
	router.PUT("/api/v1/orders/id/:id/status", h.SetStatus)
	router.GET("/api/v1/orders/id/:id", h.GetByID)
	router.GET("/api/v1/orders/venue/:id", h.ListByVenue)
	router.GET("/api/v1/orders/company/:id", h.ListByCompany)
	router.GET("/api/v1/orders/customer/:id", h.ListByCustomer)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperrors.InvalidInput("Invalid request body"))
		return
	}

	orderID, err := h.service.RequestBooking(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"ok":      true,
		"orderID": orderID,
	})
}

func (h *OrderHandler) SetStatus(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("id")

	var req model.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperrors.InvalidStatus("Invalid status"))
		return
	}

	order, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"ok":      true,
		"orderID": order.ID,
		"status":  order.Status,
		"to":      order.CustomerID,
	})
}

func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	order, err := h.service.GetByID(r.Context(), params.ByName("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, order)
}

func (h *OrderHandler) ListByVenue(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	orders, err := h.service.ListByVenue(r.Context(), params.ByName("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, orders)
}

func (h *OrderHandler) ListByCompany(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	orders, err := h.service.ListByCompany(r.Context(), params.ByName("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, orders)
}

func (h *OrderHandler) ListByCustomer(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	orders, err := h.service.ListByCustomer(r.Context(), params.ByName("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, orders)
}

func (h *OrderHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := pkghttp.WriteJSON(w, status, data); err != nil {
		h.cfg.Log.Error("Failed to write response",
			"path", r.URL.Path,
			"error", err,
		)
	}
}

func (h *OrderHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.cfg.Log.Error("Request failed",
			"path", r.URL.Path,
			"error", appErr,
		)
	}
	if writeErr := pkghttp.WriteError(w, appErr); writeErr != nil {
		h.cfg.Log.Error("Failed to write error response",
			"path", r.URL.Path,
			"error", writeErr,
		)
	}
}
