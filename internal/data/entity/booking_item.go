package entity

import "github.com/google/uuid"

type BookingItem struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	CategoryID uuid.UUID `db:"category_id"`
	Quantity   int       `db:"quantity"`
}
