package adaptor

import (
	"encoding/json"
	"net/http"

	"storage-marketplace/internal/dto/request"
	"storage-marketplace/internal/usecase"
	"storage-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ListingHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log.With(zap.String("handler", "listing")),
	}
}

// CreateListing handles POST /api/listings (protected)
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	providerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	listing, err := h.service.CreateListing(r.Context(), providerID.String(), &req)
	if err != nil {
		respondError(w, h.log, err, "create listing")
		return
	}

	utils.ResponseCreated(w, "Listing created successfully", listing)
}

// GetListingByID handles GET /api/listings/{id}
func (h *ListingHandler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	if listingID == "" {
		utils.ResponseBadRequest(w, "Listing ID is required", nil)
		return
	}

	listing, err := h.service.GetListingByID(r.Context(), listingID)
	if err != nil {
		respondError(w, h.log, err, "get listing")
		return
	}

	utils.ResponseSuccess(w, "Listing retrieved successfully", listing)
}

// GetAllListings handles GET /api/listings
func (h *ListingHandler) GetAllListings(w http.ResponseWriter, r *http.Request) {
	req := paginatedRequest(r)

	listings, err := h.service.GetAllListings(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "get all listings")
		return
	}

	utils.ResponseSuccess(w, "Listings retrieved successfully", listings)
}

// SearchListings handles GET /api/listings/search?q=term
func (h *ListingHandler) SearchListings(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	req := paginatedRequest(r)

	listings, err := h.service.SearchListings(r.Context(), term, req)
	if err != nil {
		respondError(w, h.log, err, "search listings")
		return
	}

	utils.ResponseSuccess(w, "Listings retrieved successfully", listings)
}

// GetMyListings handles GET /api/provider/listings (protected)
func (h *ListingHandler) GetMyListings(w http.ResponseWriter, r *http.Request) {
	providerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	listings, err := h.service.GetListingsByProvider(r.Context(), providerID.String())
	if err != nil {
		respondError(w, h.log, err, "get provider listings")
		return
	}

	utils.ResponseSuccess(w, "Listings retrieved successfully", listings)
}

func paginatedRequest(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
