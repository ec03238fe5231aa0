package repository

import (
	"storage-marketplace/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Address     AddressRepository
	User        UserRepository
	Session     SessionRepository
	Listing     ListingRepository
	Attachment  AttachmentRepository
	Booking     BookingRepository
	BookingItem BookingItemRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Address:     NewAddressRepository(db, log),
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Listing:     NewListingRepository(db, log),
		Attachment:  NewAttachmentRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		BookingItem: NewBookingItemRepository(db, log),
	}
}
