package usecase

import (
	"context"
	"time"

	"storage-marketplace/internal/data/entity"
	"storage-marketplace/internal/data/repository"
	"storage-marketplace/internal/dto/request"
	"storage-marketplace/internal/dto/response"
	"storage-marketplace/pkg/database"
	"storage-marketplace/pkg/fault"
	"storage-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListingService interface {
	CreateListing(ctx context.Context, providerID string, req *request.CreateListingRequest) (*response.ListingResponse, error)
	GetListingByID(ctx context.Context, listingID string) (*response.ListingResponse, error)
	GetAllListings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingSummaryResponse], error)
	SearchListings(ctx context.Context, term string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingSummaryResponse], error)
	GetListingsByProvider(ctx context.Context, providerID string) ([]response.ListingSummaryResponse, error)
}

type listingService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewListingService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) ListingService {
	return &listingService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "listing")),
	}
}

// CreateListing resolves the address, inserts the listing and its
// attachment batch in one transaction; an attachment failure leaves no
// listing row behind.
func (s *listingService) CreateListing(ctx context.Context, providerID string, req *request.CreateListingRequest) (*response.ListingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create listing validation failed", zap.Any("errors", errs))
		return nil, fault.Newf(fault.Validation, "Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, fault.Newf(fault.Validation, "Invalid provider ID format %s", providerID)
	}

	// The capacity field must match the storage type
	storageType := entity.StorageType(req.StorageType)
	switch storageType {
	case entity.StorageTypeItemSlot:
		if req.ItemSlotCapacity == nil {
			return nil, fault.New(fault.Validation, "Item slot listings require item_slot_capacity")
		}
		if req.SquareMeters != nil {
			return nil, fault.New(fault.Validation, "Item slot listings must not set square_meters")
		}
	case entity.StorageTypeSquareMeter:
		if req.SquareMeters == nil {
			return nil, fault.New(fault.Validation, "Square meter listings require square_meters")
		}
		if req.ItemSlotCapacity != nil {
			return nil, fault.New(fault.Validation, "Square meter listings must not set item_slot_capacity")
		}
	}

	// Provider must exist
	provider, err := s.repo.User.FindByID(ctx, providerUUID)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to check provider", err)
	}
	if provider == nil {
		return nil, fault.New(fault.NotFound, "Provider not found")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create listing", err)
	}
	defer tx.Rollback(ctx)

	street := utils.NormalizeStreet(req.StreetName, req.HouseNumber)
	addressID, err := s.repo.Address.GetOrCreate(ctx, tx, street, req.City, req.PostalCode)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create listing", err)
	}

	now := time.Now()
	listing := &entity.Listing{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		ProviderID:       providerUUID,
		AddressID:        addressID,
		Title:            req.Title,
		Description:      req.Description,
		StorageType:      storageType,
		ItemSlotCapacity: req.ItemSlotCapacity,
		SquareMeters:     req.SquareMeters,
		PricePerMonth:    req.PricePerMonth,
		Status:           entity.ListingStatusActive,
	}

	if err := s.repo.Listing.Create(ctx, tx, listing); err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create listing", err)
	}

	// First image becomes primary when no explicit primary flag is set.
	// Nothing prevents the caller flagging two; the reader's primary-first
	// ordering resolves that.
	attachments := make([]*entity.Attachment, 0, len(req.Images))
	anyPrimary := false
	for _, img := range req.Images {
		if img.IsPrimary {
			anyPrimary = true
		}
	}
	for i, img := range req.Images {
		attachments = append(attachments, &entity.Attachment{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
			},
			ListingID: listing.ID,
			FileURL:   img.FileURL,
			IsPrimary: img.IsPrimary || (!anyPrimary && i == 0),
		})
	}

	if err := s.repo.Attachment.CreateBatch(ctx, tx, attachments); err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create listing", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create listing", err)
	}

	s.log.Info("Listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("provider_id", providerID),
		zap.String("storage_type", req.StorageType),
		zap.Int("image_count", len(attachments)),
	)

	address, err := s.repo.Address.FindByID(ctx, addressID)
	if err != nil {
		s.log.Warn("Failed to load address for response", zap.Error(err))
	}

	resp := response.ListingToResponse(listing, address, attachments)
	return &resp, nil
}

// GetListingByID joins the listing with its address and attachments; the
// attachment list comes back primary-first.
func (s *listingService) GetListingByID(ctx context.Context, listingID string) (*response.ListingResponse, error) {
	id, err := uuid.Parse(listingID)
	if err != nil {
		return nil, fault.Newf(fault.Validation, "Invalid listing ID format %s", listingID)
	}

	listing, err := s.repo.Listing.FindByID(ctx, id)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to load listing", err)
	}
	if listing == nil {
		return nil, fault.New(fault.NotFound, "Listing not found")
	}

	address, err := s.repo.Address.FindByID(ctx, listing.AddressID)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to load listing", err)
	}

	attachments, err := s.repo.Attachment.FindByListingID(ctx, listing.ID)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to load listing", err)
	}

	resp := response.ListingToResponse(listing, address, attachments)
	return &resp, nil
}

func (s *listingService) GetAllListings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingSummaryResponse], error) {
	summaries, err := s.repo.Listing.FindSummaries(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to load listings", err)
	}

	total, err := s.repo.Listing.CountAll(ctx)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to count listings", err)
	}

	return s.toPaginatedSummaries(summaries, req, total), nil
}

func (s *listingService) SearchListings(ctx context.Context, term string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ListingSummaryResponse], error) {
	if term == "" {
		return nil, fault.New(fault.Validation, "Search term is required")
	}

	summaries, err := s.repo.Listing.SearchSummaries(ctx, term, req.Limit(), req.Offset())
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to search listings", err)
	}

	total, err := s.repo.Listing.CountSearch(ctx, term)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to count search results", err)
	}

	s.log.Info("Listings searched",
		zap.String("term", term),
		zap.Int("count", len(summaries)),
	)

	return s.toPaginatedSummaries(summaries, req, total), nil
}

func (s *listingService) GetListingsByProvider(ctx context.Context, providerID string) ([]response.ListingSummaryResponse, error) {
	id, err := uuid.Parse(providerID)
	if err != nil {
		return nil, fault.Newf(fault.Validation, "Invalid provider ID format %s", providerID)
	}

	summaries, err := s.repo.Listing.FindByProviderID(ctx, id)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to load provider listings", err)
	}

	result := make([]response.ListingSummaryResponse, len(summaries))
	for i, summary := range summaries {
		result[i] = response.ListingSummaryToResponse(summary)
	}

	return result, nil
}

func (s *listingService) toPaginatedSummaries(summaries []*entity.ListingSummary, req *request.PaginatedRequest, total int64) *response.PaginatedResponse[response.ListingSummaryResponse] {
	data := make([]response.ListingSummaryResponse, len(summaries))
	for i, summary := range summaries {
		data[i] = response.ListingSummaryToResponse(summary)
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total)
}
