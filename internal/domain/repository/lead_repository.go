package repository

import (
	"context"

	"github.com/hylatrack/leads-api/internal/domain/entity"
)

// LeadFilter acota un listado de leads. Los campos vacíos no filtran.
// TeamID y OwnerUserID materializan el alcance que decide el motor RBAC.
type LeadFilter struct {
	TeamID      string
	OwnerUserID string
	Status      entity.LeadStatus
}

// LeadRepository define el puerto de persistencia para leads (DIP).
// Los leads nunca se eliminan.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	// List devuelve los leads que pasan el filtro, ordenados por created_at descendente.
	List(ctx context.Context, filter LeadFilter) ([]*entity.Lead, error)
}

// LeadImageRepository define el puerto de persistencia para metadatos de imágenes.
type LeadImageRepository interface {
	Create(ctx context.Context, image *entity.LeadImage) error
	// ListByLead devuelve las imágenes del lead ordenadas por uploaded_at descendente.
	ListByLead(ctx context.Context, leadID string) ([]*entity.LeadImage, error)
}
