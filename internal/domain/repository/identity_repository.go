package repository

import (
	"context"

	"github.com/hylatrack/leads-api/internal/domain/entity"
)

// IdentityRepository define el puerto hacia el proveedor de identidad.
// Una Identity puede existir sin perfil (alta interrumpida); el directorio de
// usuarios la "repara" adjuntando un perfil nuevo en lugar de duplicarla.
type IdentityRepository interface {
	Create(ctx context.Context, identity *entity.Identity) error
	GetByID(ctx context.Context, id string) (*entity.Identity, error)
	GetByEmail(ctx context.Context, email string) (*entity.Identity, error)
}
