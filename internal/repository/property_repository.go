package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/listing-service/internal/domain"
)

// PropertyRepository defines persistence access for listings.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	// OwnerID resolves a listing's recorded seller without loading the row.
	OwnerID(ctx context.Context, id int64) (int64, error)
	ListAll(ctx context.Context) ([]domain.Property, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]domain.Property, error)
	ListVerified(ctx context.Context) ([]domain.Property, error)
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository returns a Postgres-backed implementation.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

const propertyColumns = `
        id, title, description, price, seller_id, image_url, docs_url, verified,
        location, property_type, bedrooms, bathrooms, area, created_at, updated_at`

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	const query = `
        INSERT INTO properties
            (title, description, price, seller_id, image_url, docs_url, verified,
             location, property_type, bedrooms, bathrooms, area)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		property.Title,
		property.Description,
		property.Price,
		property.SellerID,
		property.ImageURL,
		property.DocsURL,
		property.Verified,
		property.Location,
		property.PropertyType,
		property.Bedrooms,
		property.Bathrooms,
		property.Area,
	).Scan(&property.ID, &property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	const query = `
        UPDATE properties SET
            title=$1, description=$2, price=$3, image_url=$4, docs_url=$5,
            verified=$6, location=$7, property_type=$8, bedrooms=$9,
            bathrooms=$10, area=$11, updated_at=NOW()
        WHERE id=$12`

	cmd, err := r.pool.Exec(ctx, query,
		property.Title,
		property.Description,
		property.Price,
		property.ImageURL,
		property.DocsURL,
		property.Verified,
		property.Location,
		property.PropertyType,
		property.Bedrooms,
		property.Bathrooms,
		property.Area,
		property.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	query := `SELECT` + propertyColumns + ` FROM properties WHERE id=$1`

	var p domain.Property
	if err := scanProperty(r.pool.QueryRow(ctx, query, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) OwnerID(ctx context.Context, id int64) (int64, error) {
	var sellerID int64
	if err := r.pool.QueryRow(ctx, `SELECT seller_id FROM properties WHERE id=$1`, id).Scan(&sellerID); err != nil {
		return 0, err
	}
	return sellerID, nil
}

func (r *propertyRepository) ListAll(ctx context.Context) ([]domain.Property, error) {
	query := `SELECT` + propertyColumns + ` FROM properties ORDER BY id`
	return r.list(ctx, query)
}

func (r *propertyRepository) ListBySeller(ctx context.Context, sellerID int64) ([]domain.Property, error) {
	query := `SELECT` + propertyColumns + ` FROM properties WHERE seller_id=$1 ORDER BY id`
	return r.list(ctx, query, sellerID)
}

func (r *propertyRepository) ListVerified(ctx context.Context) ([]domain.Property, error) {
	query := `SELECT` + propertyColumns + ` FROM properties WHERE verified ORDER BY id`
	return r.list(ctx, query)
}

func (r *propertyRepository) list(ctx context.Context, query string, args ...any) ([]domain.Property, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := scanProperty(rows, &p); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func scanProperty(row pgx.Row, p *domain.Property) error {
	return row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.SellerID,
		&p.ImageURL,
		&p.DocsURL,
		&p.Verified,
		&p.Location,
		&p.PropertyType,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Area,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}
