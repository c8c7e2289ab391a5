package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/internal/domain/repository"
)

var _ repository.LeadImageRepository = (*LeadImageRepo)(nil)

// LeadImageRepo implementación del puerto LeadImageRepository sobre PostgreSQL.
type LeadImageRepo struct {
	pool *pgxpool.Pool
}

// NewLeadImageRepository construye el adaptador de persistencia para metadatos de imágenes.
func NewLeadImageRepository(pool *pgxpool.Pool) *LeadImageRepo {
	return &LeadImageRepo{pool: pool}
}

// Create persiste los metadatos de una imagen recién subida.
func (r *LeadImageRepo) Create(ctx context.Context, image *entity.LeadImage) error {
	query := `
		INSERT INTO lead_images (id, lead_id, storage_path, url, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		image.ID, image.LeadID, image.StoragePath, image.URL, image.UploadedBy, image.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead image: %w", err)
	}
	return nil
}

// ListByLead lista las imágenes del lead por uploaded_at descendente.
func (r *LeadImageRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.LeadImage, error) {
	query := `
		SELECT id, lead_id, storage_path, url, uploaded_by, uploaded_at
		FROM lead_images WHERE lead_id = $1 ORDER BY uploaded_at DESC`
	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list lead images: %w", err)
	}
	defer rows.Close()
	var list []*entity.LeadImage
	for rows.Next() {
		var img entity.LeadImage
		if err := rows.Scan(&img.ID, &img.LeadID, &img.StoragePath, &img.URL, &img.UploadedBy, &img.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan lead image: %w", err)
		}
		list = append(list, &img)
	}
	return list, rows.Err()
}
