package model

import "time"

// VenueLock is an advisory lock guarding the admission check-then-insert
// sequence for one venue. Locks auto-expire via a TTL index so a crashed
// request cannot wedge a venue.
type VenueLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
