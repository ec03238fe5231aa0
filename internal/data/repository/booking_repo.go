package repository

import (
	"context"
	"fmt"

	"storage-marketplace/internal/data/entity"
	"storage-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create and SetRequestedCapacity run on the caller's handle: the
	// booking row and its sub-structure (items or capacity) are one unit.
	Create(ctx context.Context, q database.Queryer, booking *entity.Booking) error
	SetRequestedCapacity(ctx context.Context, q database.Queryer, bookingID uuid.UUID, sqMeters float64) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.Booking, error)
	FindBySeekerID(ctx context.Context, seekerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountBySeekerID(ctx context.Context, seekerID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_ref, listing_id, seeker_id, start_date, end_date,
	       total_cost, status, requested_sq_meters, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, q database.Queryer, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_ref, listing_id, seeker_id, start_date,
		                      end_date, total_cost, status, requested_sq_meters,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := q.Exec(ctx, query,
		booking.ID,
		booking.BookingRef,
		booking.ListingID,
		booking.SeekerID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalCost,
		booking.Status,
		booking.RequestedSqMeters,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("seeker_id", booking.SeekerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingRef, err)
	}

	return nil
}

func (r *bookingRepository) SetRequestedCapacity(ctx context.Context, q database.Queryer, bookingID uuid.UUID, sqMeters float64) error {
	query := `UPDATE bookings SET requested_sq_meters = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, bookingID, sqMeters)
	if err != nil {
		r.log.Error("Failed to set requested capacity",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.Float64("sq_meters", sqMeters),
		)
		return fmt.Errorf("set requested capacity on booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.BookingRef,
		&booking.ListingID,
		&booking.SeekerID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.TotalCost,
		&booking.Status,
		&booking.RequestedSqMeters,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE listing_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, listingID)
	if err != nil {
		r.log.Error("Failed to find bookings by listing ID",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return nil, fmt.Errorf("find bookings by listing ID %s: %w", listingID.String(), err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func (r *bookingRepository) FindBySeekerID(ctx context.Context, seekerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE seeker_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, seekerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by seeker ID",
			zap.Error(err),
			zap.String("seeker_id", seekerID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by seeker ID %s: %w", seekerID.String(), err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func (r *bookingRepository) scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.BookingRef,
			&booking.ListingID,
			&booking.SeekerID,
			&booking.StartDate,
			&booking.EndDate,
			&booking.TotalCost,
			&booking.Status,
			&booking.RequestedSqMeters,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountBySeekerID(ctx context.Context, seekerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE seeker_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, seekerID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by seeker ID",
			zap.Error(err),
			zap.String("seeker_id", seekerID.String()),
		)
		return 0, fmt.Errorf("count bookings by seeker ID %s: %w", seekerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}
