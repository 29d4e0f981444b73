package service

import (
	"time"

	"vowsuite/pkg/model"
)

// bookingBuffer is the setup/teardown margin around every existing booking.
// The caller-facing unavailability message names this margin, so changing it
// means changing that copy too.
const bookingBuffer = 24 * time.Hour

// hasVenueConflict reports whether the candidate window collides with any
// existing booking at the venue, each widened by bookingBuffer on both sides.
//
// Only the candidate's two boundary instants are tested against each widened
// window. A candidate that fully spans an existing booking without either
// endpoint landing inside the widened window is admitted. Both comparisons
// are inclusive, and an empty slice always admits.
func hasVenueConflict(existing []*model.Order, startAt, endAt time.Time) bool {
	for _, booked := range existing {
		lo := booked.StartAt.Add(-bookingBuffer)
		hi := booked.EndAt.Add(bookingBuffer)

		if withinInclusive(startAt, lo, hi) || withinInclusive(endAt, lo, hi) {
			return true
		}
	}
	return false
}

func withinInclusive(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}
