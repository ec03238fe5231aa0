package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// CanTransitionTo reports whether a status change is legal. Pending is the
// only non-terminal state.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != BookingStatusPending {
		return false
	}
	switch next {
	case BookingStatusAccepted, BookingStatusRejected, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsValid reports whether the value is a known booking status.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// Booking's sub-structure follows the listing's storage type: item_slot
// bookings own BookingItem rows, square_meter bookings carry
// RequestedSqMeters on the row itself.
type Booking struct {
	Base
	BookingRef        string        `db:"booking_ref"`
	ListingID         uuid.UUID     `db:"listing_id"`
	SeekerID          uuid.UUID     `db:"seeker_id"`
	StartDate         time.Time     `db:"start_date"`
	EndDate           time.Time     `db:"end_date"`
	TotalCost         float64       `db:"total_cost"`
	Status            BookingStatus `db:"status"`
	RequestedSqMeters *float64      `db:"requested_sq_meters"`
}
