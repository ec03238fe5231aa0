package repository

import (
	"context"
	"fmt"
	"time"

	"storage-marketplace/internal/data/entity"
	"storage-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AddressRepository interface {
	// GetOrCreate runs on the caller's handle so the lookup and the
	// insert share one transaction. Identical (street, city, postal)
	// triples reuse the existing row. Nothing locks out a concurrent
	// identical insert; the store's own isolation is all there is.
	GetOrCreate(ctx context.Context, q database.Queryer, streetName, city, postalCode string) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)
}

type addressRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddressRepository(db database.PgxIface, log *zap.Logger) AddressRepository {
	return &addressRepository{
		db:  db,
		log: log.With(zap.String("repository", "address")),
	}
}

func (r *addressRepository) GetOrCreate(ctx context.Context, q database.Queryer, streetName, city, postalCode string) (uuid.UUID, error) {
	findQuery := `
		SELECT id
		FROM addresses
		WHERE street_name = $1 AND city = $2 AND postal_code = $3
	`

	var id uuid.UUID
	err := q.QueryRow(ctx, findQuery, streetName, city, postalCode).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		r.log.Error("Failed to look up address",
			zap.Error(err),
			zap.String("city", city),
			zap.String("postal_code", postalCode),
		)
		return uuid.Nil, fmt.Errorf("find address %s %s: %w", city, postalCode, err)
	}

	insertQuery := `
		INSERT INTO addresses (id, street_name, city, postal_code, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	id = uuid.New()
	_, err = q.Exec(ctx, insertQuery, id, streetName, city, postalCode, time.Now())
	if err != nil {
		r.log.Error("Failed to create address",
			zap.Error(err),
			zap.String("city", city),
			zap.String("postal_code", postalCode),
		)
		return uuid.Nil, fmt.Errorf("create address %s %s: %w", city, postalCode, err)
	}

	return id, nil
}

func (r *addressRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	query := `
		SELECT id, street_name, city, postal_code, created_at
		FROM addresses
		WHERE id = $1
	`

	var address entity.Address
	err := r.db.QueryRow(ctx, query, id).Scan(
		&address.ID,
		&address.StreetName,
		&address.City,
		&address.PostalCode,
		&address.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find address by ID",
			zap.Error(err),
			zap.String("address_id", id.String()),
		)
		return nil, fmt.Errorf("find address by ID %s: %w", id.String(), err)
	}

	return &address, nil
}
