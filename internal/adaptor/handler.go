package adaptor

import (
	"net/http"

	"storage-marketplace/internal/usecase"
	"storage-marketplace/pkg/fault"
	"storage-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Listing *ListingHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Listing: NewListingHandler(service.Listing, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// respondError maps a service failure onto the response envelope. Expected
// kinds carry their own caller-safe message; everything else is logged and
// surfaced generically.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch fault.KindOf(err) {
	case fault.Validation:
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, fault.MessageOf(err), nil)

	case fault.Conflict:
		log.Warn(operation+" conflict", zap.Error(err))
		utils.ResponseConflict(w, fault.MessageOf(err))

	case fault.InvalidCredentials:
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, fault.MessageOf(err))

	case fault.NotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, fault.MessageOf(err))

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
