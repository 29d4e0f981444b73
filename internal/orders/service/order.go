package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	orderserrors "vowsuite/internal/orders/errors"
	"vowsuite/internal/orders/repository"
	ordersvalidator "vowsuite/internal/orders/validator"
	"vowsuite/pkg/config"
	apperrors "vowsuite/pkg/errors"
	"vowsuite/pkg/model"
	"vowsuite/pkg/sanitizer"
)

// Caller-facing copy. The availability message names the buffer width, so it
// must move in lockstep with bookingBuffer.
const (
	venueUnavailableMessage = "Sorry, this venue is not available on your wedding date ±1 day. Choose a different date or venue."
	venueBusyMessage        = "This venue is currently being booked by another request. Please try again."
	missingFieldsMessage    = "Missing required fields"
	invalidStatusMessage    = "Invalid status"
)

// NotificationSink receives one message per resolved booking. Sink failures
// propagate to the caller unclassified; the service does not retry and does
// not roll back a persistence step that already succeeded.
type NotificationSink interface {
	Send(ctx context.Context, notification *model.Notification) error
}

type OrderService interface {
	RequestBooking(ctx context.Context, req *model.CreateOrderRequest) (string, error)
	SetStatus(ctx context.Context, id string, status string) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByVenue(ctx context.Context, venueID string) ([]*model.Order, error)
	ListByCompany(ctx context.Context, companyID string) ([]*model.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*model.Order, error)
}

type orderService struct {
	cfg       *config.Config
	repo      repository.OrderRepository
	locks     repository.VenueLockRepository
	sink      NotificationSink
	validator *ordersvalidator.OrderValidator
}

func NewOrderService(
	cfg *config.Config,
	repo repository.OrderRepository,
	locks repository.VenueLockRepository,
	sink NotificationSink,
) OrderService {
	return &orderService{
		cfg:       cfg,
		repo:      repo,
		locks:     locks,
		sink:      sink,
		validator: ordersvalidator.NewOrderValidator(),
	}
}

// RequestBooking admits a booking request against the venue's existing
// bookings and persists it as pending.
//
// The availability check and the insert are two separate storage calls with
// no transaction between them, so two concurrent requests for the same venue
// can both pass the check and both insert. The optional venue lock narrows
// that window; with the lock disabled (the default) the race stands.
func (s *orderService) RequestBooking(ctx context.Context, req *model.CreateOrderRequest) (string, error) {
	if err := s.validator.ValidateCreateRequest(req); err != nil {
		var validationErrs ordersvalidator.ValidationErrors
		if errors.As(err, &validationErrs) {
			details := make(map[string]any, len(validationErrs))
			for _, ve := range validationErrs {
				details[ve.Field] = ve.Message
			}
			return "", apperrors.InvalidInput(missingFieldsMessage).WithDetails(details)
		}
		return "", apperrors.InvalidInput(missingFieldsMessage)
	}

	if s.cfg.VenueLockEnabled {
		if err := s.locks.Acquire(ctx, req.VenueID, s.cfg.VenueLockTTL); err != nil {
			if errors.Is(err, orderserrors.ErrLockHeld) {
				return "", apperrors.Conflict(venueBusyMessage)
			}
			return "", apperrors.Internal("Failed to acquire venue lock", err)
		}
		defer func() {
			if releaseErr := s.locks.Release(context.WithoutCancel(ctx), req.VenueID); releaseErr != nil {
				s.cfg.Log.Warn("Failed to release venue lock",
					"venue_id", req.VenueID,
					"error", releaseErr,
				)
			}
		}()
	}

	existing, err := s.repo.FindByVenue(ctx, req.VenueID)
	if err != nil {
		return "", apperrors.Internal("Failed to load venue bookings", err)
	}

	if hasVenueConflict(existing, req.StartAt, req.EndAt) {
		return "", apperrors.VenueUnavailable(venueUnavailableMessage)
	}

	order := &model.Order{
		CompanyID:  req.CompanyID,
		CustomerID: req.CustomerID,
		VenueID:    req.VenueID,
		EventID:    req.EventID,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Note:       sanitizer.NormalizeNote(req.Note, s.cfg.MaxNoteLength),
		Status:     model.StatusPending,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return "", apperrors.Internal("Failed to create order", err)
	}

	s.cfg.Log.Info("Booking request admitted",
		"order_id", order.ID,
		"venue_id", order.VenueID,
		"customer_id", order.CustomerID,
	)

	return order.ID, nil
}

// SetStatus resolves a pending booking. Acceptance persists the new status;
// rejection deletes the record outright, so a second rejected call on the
// same id fails with NotFound. The notification is sent even when the
// persistence step failed; a persistence error wins over a sink error when
// both occur.
func (s *orderService) SetStatus(ctx context.Context, id string, status string) (*model.Order, error) {
	if status != model.StatusAccepted && status != model.StatusRejected {
		return nil, apperrors.InvalidStatus(invalidStatusMessage)
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderserrors.ErrNotFound) || errors.Is(err, orderserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Order", id)
		}
		return nil, apperrors.Internal("Failed to load order", err)
	}

	var persistErr error
	switch status {
	case model.StatusAccepted:
		if _, err := s.repo.UpdateStatus(ctx, id, status); err != nil {
			persistErr = err
		} else {
			order.Status = status
		}
	case model.StatusRejected:
		persistErr = s.repo.Delete(ctx, id)
	}

	notification := &model.Notification{
		To:      order.CustomerID,
		Message: fmt.Sprintf("Your booking request for venue %s has been %s.", order.VenueID, status),
	}
	sinkErr := s.sink.Send(ctx, notification)

	if persistErr != nil {
		if errors.Is(persistErr, orderserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Order", id)
		}
		return nil, apperrors.Internal("Failed to update order status", persistErr)
	}
	if sinkErr != nil {
		return nil, apperrors.Internal("Failed to send notification", sinkErr)
	}

	s.cfg.Log.Info("Order resolved",
		"order_id", id,
		"status", status,
		"customer_id", order.CustomerID,
	)

	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderserrors.ErrNotFound) || errors.Is(err, orderserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Order", id)
		}
		return nil, apperrors.Internal("Failed to load order", err)
	}
	return order, nil
}

func (s *orderService) ListByVenue(ctx context.Context, venueID string) ([]*model.Order, error) {
	orders, err := s.repo.FindByVenue(ctx, venueID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list venue orders", err)
	}
	sortByStatusRank(orders)
	return orders, nil
}

func (s *orderService) ListByCompany(ctx context.Context, companyID string) ([]*model.Order, error) {
	orders, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list company orders", err)
	}
	sortByStatusRank(orders)
	return orders, nil
}

func (s *orderService) ListByCustomer(ctx context.Context, customerID string) ([]*model.Order, error) {
	orders, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list customer orders", err)
	}
	sortByStatusRank(orders)
	return orders, nil
}

// sortByStatusRank orders listings by status precedence, keeping the
// repository's startAt order within each status.
func sortByStatusRank(orders []*model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return model.StatusRank(orders[i].Status) < model.StatusRank(orders[j].Status)
	})
}
