package repository

import (
	"context"

	"github.com/hylatrack/leads-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para perfiles de usuario (DIP).
// Los perfiles nunca se eliminan; el bloqueo se modela como cambio de estado.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUID(ctx context.Context, uid string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListAll(ctx context.Context) ([]*entity.User, error)
	ListByTeam(ctx context.Context, teamID string) ([]*entity.User, error)
}
