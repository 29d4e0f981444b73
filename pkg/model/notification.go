package model

import "time"

// Notification is a customer-facing message recorded when a vendor
// resolves an order. Date is assigned by the sink on insert; records are
// unread until the customer opens them.
type Notification struct {
	ID      string    `json:"id,omitempty" bson:"_id,omitempty"`
	To      string    `json:"to" bson:"to" validate:"required"`
	Message string    `json:"message" bson:"message" validate:"required"`
	Date    time.Time `json:"date" bson:"date"`
	Read    bool      `json:"read" bson:"read"`
}
