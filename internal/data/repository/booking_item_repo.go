package repository

import (
	"context"
	"fmt"

	"storage-marketplace/internal/data/entity"
	"storage-marketplace/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingItemRepository interface {
	Create(ctx context.Context, q database.Queryer, item *entity.BookingItem) error
	// CreateBatch inserts on the caller's handle so the item rows commit
	// with their booking or not at all.
	CreateBatch(ctx context.Context, q database.Queryer, items []*entity.BookingItem) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingItem, error)
}

type bookingItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingItemRepository(db database.PgxIface, log *zap.Logger) BookingItemRepository {
	return &bookingItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_item")),
	}
}

func (r *bookingItemRepository) Create(ctx context.Context, q database.Queryer, item *entity.BookingItem) error {
	query := `
		INSERT INTO booking_items (id, booking_id, category_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query,
		item.ID,
		item.BookingID,
		item.CategoryID,
		item.Quantity,
		item.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking item",
			zap.Error(err),
			zap.String("booking_id", item.BookingID.String()),
			zap.String("category_id", item.CategoryID.String()),
		)
		return fmt.Errorf("create booking item for booking %s: %w",
			item.BookingID.String(), err)
	}

	return nil
}

func (r *bookingItemRepository) CreateBatch(ctx context.Context, q database.Queryer, items []*entity.BookingItem) error {
	if len(items) == 0 {
		return nil
	}

	for _, item := range items {
		if err := r.Create(ctx, q, item); err != nil {
			return err
		}
	}

	return nil
}

func (r *bookingItemRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingItem, error) {
	query := `
		SELECT id, booking_id, category_id, quantity, created_at
		FROM booking_items
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking items by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking items by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var items []*entity.BookingItem
	for rows.Next() {
		var item entity.BookingItem
		err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.CategoryID,
			&item.Quantity,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking item row", zap.Error(err))
			return nil, fmt.Errorf("scan booking item row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking item rows: %w", err)
	}

	return items, nil
}
