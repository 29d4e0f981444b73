package model

import "time"

// Booking order statuses. An order is created pending and resolved exactly
// once by the vendor: accepted orders persist with the new status, rejected
// orders are deleted outright.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// StatusRank gives the listing precedence pending < accepted < rejected.
// Rejected orders are deleted on resolution, so the last branch is never
// hit today, but the order must stay a valid total order if soft rejection
// is ever reintroduced.
func StatusRank(status string) int {
	switch status {
	case StatusPending:
		return 0
	case StatusAccepted:
		return 1
	case StatusRejected:
		return 2
	default:
		return 3
	}
}

// Order is a customer's request to occupy a venue for a date window.
// VenueID, CompanyID, CustomerID, EventID and CreatedAt are write-once;
// Status is the only field mutated after creation, and only through the
// order service. BSON keys mirror the legacy document shape.
type Order struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CompanyID  string    `json:"companyID" bson:"companyID" validate:"required"`
	CustomerID string    `json:"customerID" bson:"customerID" validate:"required"`
	VenueID    string    `json:"venueID" bson:"venueID" validate:"required"`
	EventID    string    `json:"eventID" bson:"eventID" validate:"required"`
	StartAt    time.Time `json:"startAt" bson:"startAt" validate:"required"`
	EndAt      time.Time `json:"endAt" bson:"endAt" validate:"required"`
	Note       string    `json:"note,omitempty" bson:"note"`
	Status     string    `json:"status" bson:"status" validate:"required,oneof=pending accepted rejected"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt" validate:"omitempty"`
}

// CreateOrderRequest is the boundary shape of a booking creation call.
// Every field but the note is required; the window is accepted as given
// and is not checked for end-after-start here.
type CreateOrderRequest struct {
	CustomerID string    `json:"customerID" validate:"required"`
	VenueID    string    `json:"venueID" validate:"required"`
	CompanyID  string    `json:"companyID" validate:"required"`
	EventID    string    `json:"eventID" validate:"required"`
	StartAt    time.Time `json:"startAt" validate:"required"`
	EndAt      time.Time `json:"endAt" validate:"required"`
	Note       string    `json:"note,omitempty"`
}

// UpdateOrderStatusRequest is the boundary shape of a vendor decision.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}
