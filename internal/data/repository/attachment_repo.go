package repository

import (
	"context"
	"fmt"

	"storage-marketplace/internal/data/entity"
	"storage-marketplace/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AttachmentRepository interface {
	Create(ctx context.Context, q database.Queryer, attachment *entity.Attachment) error
	// CreateBatch inserts on the caller's handle: the whole batch commits
	// with the listing or not at all.
	CreateBatch(ctx context.Context, q database.Queryer, attachments []*entity.Attachment) error
	FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.Attachment, error)
}

type attachmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAttachmentRepository(db database.PgxIface, log *zap.Logger) AttachmentRepository {
	return &attachmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "attachment")),
	}
}

func (r *attachmentRepository) Create(ctx context.Context, q database.Queryer, attachment *entity.Attachment) error {
	query := `
		INSERT INTO attachments (id, listing_id, file_url, is_primary, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query,
		attachment.ID,
		attachment.ListingID,
		attachment.FileURL,
		attachment.IsPrimary,
		attachment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create attachment",
			zap.Error(err),
			zap.String("listing_id", attachment.ListingID.String()),
			zap.String("file_url", attachment.FileURL),
		)
		return fmt.Errorf("create attachment for listing %s: %w",
			attachment.ListingID.String(), err)
	}

	return nil
}

func (r *attachmentRepository) CreateBatch(ctx context.Context, q database.Queryer, attachments []*entity.Attachment) error {
	if len(attachments) == 0 {
		return nil
	}

	for _, a := range attachments {
		if err := r.Create(ctx, q, a); err != nil {
			return err
		}
	}

	return nil
}

// FindByListingID returns a listing's attachments primary-first. If more
// than one row carries the primary flag, insertion order breaks the tie.
func (r *attachmentRepository) FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.Attachment, error) {
	query := `
		SELECT id, listing_id, file_url, is_primary, created_at
		FROM attachments
		WHERE listing_id = $1
		ORDER BY is_primary DESC, created_at
	`

	rows, err := r.db.Query(ctx, query, listingID)
	if err != nil {
		r.log.Error("Failed to find attachments by listing ID",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return nil, fmt.Errorf("find attachments by listing ID %s: %w", listingID.String(), err)
	}
	defer rows.Close()

	var attachments []*entity.Attachment
	for rows.Next() {
		var a entity.Attachment
		err := rows.Scan(
			&a.ID,
			&a.ListingID,
			&a.FileURL,
			&a.IsPrimary,
			&a.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan attachment row", zap.Error(err))
			return nil, fmt.Errorf("scan attachment row: %w", err)
		}
		attachments = append(attachments, &a)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate attachment rows: %w", err)
	}

	return attachments, nil
}
