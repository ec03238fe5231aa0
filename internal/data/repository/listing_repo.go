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

type ListingRepository interface {
	// Create runs on the caller's handle so the listing insert and its
	// attachment batch commit or roll back together.
	Create(ctx context.Context, q database.Queryer, listing *entity.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	FindSummaries(ctx context.Context, limit, offset int) ([]*entity.ListingSummary, error)
	SearchSummaries(ctx context.Context, term string, limit, offset int) ([]*entity.ListingSummary, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.ListingSummary, error)
	CountAll(ctx context.Context) (int64, error)
	CountSearch(ctx context.Context, term string) (int64, error)
}

type listingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewListingRepository(db database.PgxIface, log *zap.Logger) ListingRepository {
	return &listingRepository{
		db:  db,
		log: log.With(zap.String("repository", "listing")),
	}
}

func (r *listingRepository) Create(ctx context.Context, q database.Queryer, listing *entity.Listing) error {
	query := `
		INSERT INTO listings (id, provider_id, address_id, title, description,
		                      storage_type, item_slot_capacity, square_meters,
		                      price_per_month, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := q.Exec(ctx, query,
		listing.ID,
		listing.ProviderID,
		listing.AddressID,
		listing.Title,
		listing.Description,
		listing.StorageType,
		listing.ItemSlotCapacity,
		listing.SquareMeters,
		listing.PricePerMonth,
		listing.Status,
		listing.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create listing",
			zap.Error(err),
			zap.String("provider_id", listing.ProviderID.String()),
			zap.String("title", listing.Title),
		)
		return fmt.Errorf("create listing %s: %w", listing.Title, err)
	}

	return nil
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	query := `
		SELECT id, provider_id, address_id, title, description, storage_type,
		       item_slot_capacity, square_meters, price_per_month, status, created_at
		FROM listings
		WHERE id = $1
	`

	var listing entity.Listing
	err := r.db.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.ProviderID,
		&listing.AddressID,
		&listing.Title,
		&listing.Description,
		&listing.StorageType,
		&listing.ItemSlotCapacity,
		&listing.SquareMeters,
		&listing.PricePerMonth,
		&listing.Status,
		&listing.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find listing by ID",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return nil, fmt.Errorf("find listing by ID %s: %w", id.String(), err)
	}

	return &listing, nil
}

// summarySelect joins the address and the primary image into one row per
// listing. The lateral subquery keeps the first attachment after the
// primary-first ordering, so two rows both flagged primary resolve by
// insertion order.
const summarySelect = `
	SELECT l.id, l.provider_id, l.title, l.storage_type, l.item_slot_capacity,
	       l.square_meters, l.price_per_month, l.status,
	       a.street_name, a.city, a.postal_code,
	       att.file_url, l.created_at
	FROM listings l
	JOIN addresses a ON a.id = l.address_id
	LEFT JOIN LATERAL (
		SELECT file_url
		FROM attachments
		WHERE listing_id = l.id
		ORDER BY is_primary DESC, created_at
		LIMIT 1
	) att ON TRUE
`

func (r *listingRepository) FindSummaries(ctx context.Context, limit, offset int) ([]*entity.ListingSummary, error) {
	query := summarySelect + `
		ORDER BY l.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get listings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find listings limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return r.scanSummaries(rows)
}

func (r *listingRepository) SearchSummaries(ctx context.Context, term string, limit, offset int) ([]*entity.ListingSummary, error) {
	// Substring match on city or street. Case sensitivity follows the
	// store's collation; it is not adjusted here.
	query := summarySelect + `
		WHERE a.city LIKE '%' || $1 || '%' OR a.street_name LIKE '%' || $1 || '%'
		ORDER BY l.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, term, limit, offset)
	if err != nil {
		r.log.Error("Failed to search listings",
			zap.Error(err),
			zap.String("term", term),
		)
		return nil, fmt.Errorf("search listings for %q: %w", term, err)
	}
	defer rows.Close()

	return r.scanSummaries(rows)
}

func (r *listingRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.ListingSummary, error) {
	query := summarySelect + `
		WHERE l.provider_id = $1
		ORDER BY l.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, providerID)
	if err != nil {
		r.log.Error("Failed to find listings by provider",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("find listings by provider %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	return r.scanSummaries(rows)
}

func (r *listingRepository) scanSummaries(rows pgx.Rows) ([]*entity.ListingSummary, error) {
	var summaries []*entity.ListingSummary
	for rows.Next() {
		var s entity.ListingSummary
		err := rows.Scan(
			&s.ID,
			&s.ProviderID,
			&s.Title,
			&s.StorageType,
			&s.ItemSlotCapacity,
			&s.SquareMeters,
			&s.PricePerMonth,
			&s.Status,
			&s.StreetName,
			&s.City,
			&s.PostalCode,
			&s.PrimaryImageURL,
			&s.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan listing summary row", zap.Error(err))
			return nil, fmt.Errorf("scan listing summary row: %w", err)
		}
		summaries = append(summaries, &s)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate listing rows: %w", err)
	}

	return summaries, nil
}

func (r *listingRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM listings`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count listings", zap.Error(err))
		return 0, fmt.Errorf("count listings: %w", err)
	}

	return count, nil
}

func (r *listingRepository) CountSearch(ctx context.Context, term string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM listings l
		JOIN addresses a ON a.id = l.address_id
		WHERE a.city LIKE '%' || $1 || '%' OR a.street_name LIKE '%' || $1 || '%'
	`

	var count int64
	err := r.db.QueryRow(ctx, query, term).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count search results", zap.Error(err), zap.String("term", term))
		return 0, fmt.Errorf("count search results for %q: %w", term, err)
	}

	return count, nil
}
