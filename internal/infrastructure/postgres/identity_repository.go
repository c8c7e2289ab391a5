package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hylatrack/leads-api/internal/domain"
	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/internal/domain/repository"
)

var _ repository.IdentityRepository = (*IdentityRepo)(nil)

// IdentityRepo implementación del puerto IdentityRepository sobre PostgreSQL.
type IdentityRepo struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository construye el adaptador de persistencia para identidades.
func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepo {
	return &IdentityRepo{pool: pool}
}

// Create persiste una identidad nueva.
func (r *IdentityRepo) Create(ctx context.Context, identity *entity.Identity) error {
	query := `
		INSERT INTO identities (id, email, password_hash, name, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		identity.ID, identity.Email, identity.PasswordHash, identity.Name, identity.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

// GetByID obtiene una identidad por ID; nil si no existe.
func (r *IdentityRepo) GetByID(ctx context.Context, id string) (*entity.Identity, error) {
	return r.scanOne(ctx, `
		SELECT id, email, password_hash, name, created_at
		FROM identities WHERE id = $1`, id)
}

// GetByEmail obtiene una identidad por email; nil si no existe.
func (r *IdentityRepo) GetByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	return r.scanOne(ctx, `
		SELECT id, email, password_hash, name, created_at
		FROM identities WHERE email = $1 LIMIT 1`, email)
}

func (r *IdentityRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Identity, error) {
	var i entity.Identity
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&i.ID, &i.Email, &i.PasswordHash, &i.Name, &i.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	return &i, nil
}
