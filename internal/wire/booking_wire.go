package wire

import (
	"storage-marketplace/internal/adaptor"
	"storage-marketplace/internal/data/repository"
	"storage-marketplace/pkg/middleware"
	"storage-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Request a booking on a listing (seekers)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Booking details with its sub-structure
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id}/status - Accept/reject (provider) or cancel (seeker)
		r.Put("/api/bookings/{id}/status", bookingHandler.UpdateBookingStatus)

		// GET /api/user/bookings - Booking history of the caller
		r.Get("/api/user/bookings", bookingHandler.GetMyBookings)

		// GET /api/listings/{id}/bookings - Requests against an owned listing
		r.Get("/api/listings/{id}/bookings", bookingHandler.GetListingBookings)
	})
}
