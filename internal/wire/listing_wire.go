package wire

import (
	"storage-marketplace/internal/adaptor"
	"storage-marketplace/internal/data/repository"
	"storage-marketplace/pkg/middleware"
	"storage-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireListing(
	r chi.Router,
	listingHandler *adaptor.ListingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Browsing and search are open to anyone
	r.Get("/api/listings", listingHandler.GetAllListings)
	r.Get("/api/listings/search", listingHandler.SearchListings)
	r.Get("/api/listings/{id}", listingHandler.GetListingByID)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/listings - Publish a new listing (providers)
		r.Post("/api/listings", listingHandler.CreateListing)

		// GET /api/provider/listings - Listings owned by the caller
		r.Get("/api/provider/listings", listingHandler.GetMyListings)
	})
}
