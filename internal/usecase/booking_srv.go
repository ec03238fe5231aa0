package usecase

import (
	"context"
	"math"
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

type BookingService interface {
	CreateBooking(ctx context.Context, seekerID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, actorID, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookingsByListing(ctx context.Context, providerID, listingID string) ([]response.BookingResponse, error)
	GetBookingsBySeeker(ctx context.Context, seekerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// CreateBooking writes the booking row and its sub-structure in one
// transaction. The listing's storage type picks the branch: item_slot
// bookings bulk-insert their item rows, square_meter bookings set the
// requested capacity column on the booking itself. A failure anywhere
// rolls back the whole booking.
func (s *bookingService) CreateBooking(ctx context.Context, seekerID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fault.Newf(fault.Validation, "Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	seekerUUID, err := uuid.Parse(seekerID)
	if err != nil {
		return nil, fault.Newf(fault.Validation, "Invalid seeker ID format %s", seekerID)
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, fault.Newf(fault.Validation, "Invalid listing ID format %s", req.ListingID)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fault.New(fault.Validation, "Invalid start date")
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fault.New(fault.Validation, "Invalid end date")
	}
	if !endDate.After(startDate) {
		return nil, fault.New(fault.Validation, "End date must be after start date")
	}

	// Listing must exist; its storage type decides the booking shape
	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to check listing", err)
	}
	if listing == nil {
		return nil, fault.New(fault.NotFound, "Listing not found")
	}

	switch listing.StorageType {
	case entity.StorageTypeItemSlot:
		if len(req.Items) == 0 {
			return nil, fault.New(fault.Validation, "Item slot bookings require at least one item")
		}
		if req.RequestedSqMeters != nil {
			return nil, fault.New(fault.Validation, "Item slot bookings must not request square meters")
		}
	case entity.StorageTypeSquareMeter:
		if req.RequestedSqMeters == nil {
			return nil, fault.New(fault.Validation, "Square meter bookings require requested_sq_meters")
		}
		if len(req.Items) > 0 {
			return nil, fault.New(fault.Validation, "Square meter bookings must not carry items")
		}
	}

	totalCost := s.totalCost(listing, startDate, endDate, req.TotalCost)

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingRef: utils.GenerateBookingRef(),
		ListingID:  listingID,
		SeekerID:   seekerUUID,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalCost:  totalCost,
		Status:     entity.BookingStatusPending,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create booking", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Booking.Create(ctx, tx, booking); err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create booking", err)
	}

	var items []*entity.BookingItem
	switch listing.StorageType {
	case entity.StorageTypeItemSlot:
		items = make([]*entity.BookingItem, len(req.Items))
		for i, item := range req.Items {
			categoryID, err := uuid.Parse(item.CategoryID)
			if err != nil {
				return nil, fault.Newf(fault.Validation, "Invalid category ID format %s", item.CategoryID)
			}
			items[i] = &entity.BookingItem{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				BookingID:  booking.ID,
				CategoryID: categoryID,
				Quantity:   item.Quantity,
			}
		}
		if err := s.repo.BookingItem.CreateBatch(ctx, tx, items); err != nil {
			return nil, fault.Wrap(fault.Storage, "Failed to create booking", err)
		}

	case entity.StorageTypeSquareMeter:
		if err := s.repo.Booking.SetRequestedCapacity(ctx, tx, booking.ID, *req.RequestedSqMeters); err != nil {
			return nil, fault.Wrap(fault.Storage, "Failed to create booking", err)
		}
		booking.RequestedSqMeters = req.RequestedSqMeters
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create booking", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("seeker_id", seekerID),
		zap.String("storage_type", string(listing.StorageType)),
		zap.Int("item_count", len(items)),
		zap.Float64("total_cost", totalCost),
	)

	resp := response.BookingToResponse(booking, items)
	return &resp, nil
}

// UpdateBookingStatus enforces the pending→resolved machine: the listing's
// provider may accept or reject, the booking's seeker may cancel, and the
// resolved states are terminal.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, actorID, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fault.Newf(fault.Validation, "Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fault.Newf(fault.Validation, "Invalid user ID format %s", actorID)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	next := entity.BookingStatus(req.Status)
	if !next.IsValid() {
		return nil, fault.Newf(fault.Validation, "Unknown booking status %s", req.Status)
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, fault.Newf(fault.Conflict, "Cannot change booking from %s to %s", booking.Status, next)
	}

	switch next {
	case entity.BookingStatusAccepted, entity.BookingStatusRejected:
		listing, err := s.repo.Listing.FindByID(ctx, booking.ListingID)
		if err != nil {
			return nil, fault.Wrap(fault.Storage, "Failed to check listing", err)
		}
		if listing == nil || listing.ProviderID != actorUUID {
			return nil, fault.New(fault.NotFound, "Booking not found")
		}
	case entity.BookingStatusCancelled:
		if booking.SeekerID != actorUUID {
			return nil, fault.New(fault.NotFound, "Booking not found")
		}
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, next); err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to update booking status", err)
	}
	booking.Status = next
	booking.UpdatedAt = time.Now()

	s.log.Info("Booking status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(next)),
		zap.String("actor_id", actorID),
	)

	items, err := s.repo.BookingItem.FindByBookingID(ctx, booking.ID)
	if err != nil {
		s.log.Warn("Failed to load booking items for response", zap.Error(err))
	}

	resp := response.BookingToResponse(booking, items)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.BookingItem.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to load booking items", err)
	}

	resp := response.BookingToResponse(booking, items)
	return &resp, nil
}

// GetBookingsByListing is the provider's view: only the listing's owner
// sees its bookings.
func (s *bookingService) GetBookingsByListing(ctx context.Context, providerID, listingID string) ([]response.BookingResponse, error) {
	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, fault.Newf(fault.Validation, "Invalid provider ID format %s", providerID)
	}

	listingUUID, err := uuid.Parse(listingID)
	if err != nil {
		return nil, fault.Newf(fault.Validation, "Invalid listing ID format %s", listingID)
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingUUID)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to check listing", err)
	}
	if listing == nil {
		return nil, fault.New(fault.NotFound, "Listing not found")
	}
	if listing.ProviderID != providerUUID {
		return nil, fault.New(fault.NotFound, "Listing not found")
	}

	bookings, err := s.repo.Booking.FindByListingID(ctx, listingUUID)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to load bookings", err)
	}

	return s.toBookingResponses(ctx, bookings), nil
}

func (s *bookingService) GetBookingsBySeeker(ctx context.Context, seekerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	seekerUUID, err := uuid.Parse(seekerID)
	if err != nil {
		return nil, fault.Newf(fault.Validation, "Invalid seeker ID format %s", seekerID)
	}

	bookings, err := s.repo.Booking.FindBySeekerID(ctx, seekerUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to load bookings", err)
	}

	total, err := s.repo.Booking.CountBySeekerID(ctx, seekerUUID)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to count bookings", err)
	}

	data := s.toBookingResponses(ctx, bookings)
	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

// totalCost uses the caller-supplied figure when present, otherwise the
// listing price times the whole months in the range, rounded up.
func (s *bookingService) totalCost(listing *entity.Listing, start, end time.Time, override *float64) float64 {
	if override != nil {
		return *override
	}

	days := end.Sub(start).Hours() / 24
	months := math.Ceil(days / 30)
	if months < 1 {
		months = 1
	}

	return listing.PricePerMonth * months
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fault.Newf(fault.Validation, "Invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to find booking", err)
	}
	if booking == nil {
		return nil, fault.New(fault.NotFound, "Booking not found")
	}

	return booking, nil
}

func (s *bookingService) toBookingResponses(ctx context.Context, bookings []*entity.Booking) []response.BookingResponse {
	result := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		items, err := s.repo.BookingItem.FindByBookingID(ctx, booking.ID)
		if err != nil {
			s.log.Warn("Failed to load booking items",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()))
		}
		result[i] = response.BookingToResponse(booking, items)
	}
	return result
}
