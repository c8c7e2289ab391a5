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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para perfiles de usuario.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `uid, name, email, role, status, city, team_id, manager_user_id, created_at, updated_at`

// Create persiste un perfil nuevo.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		user.UID, user.Name, user.Email, string(user.Role), string(user.Status),
		user.City, user.TeamID, user.ManagerUserID, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByUID obtiene un perfil por UID; nil si no existe.
func (r *UserRepo) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	row := r.pool.QueryRow(ctx, query, uid)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by uid: %w", err)
	}
	return user, nil
}

// Update persiste el perfil completo.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, role = $4, status = $5, city = $6,
		    team_id = $7, manager_user_id = $8, updated_at = $9
		WHERE uid = $1`
	_, err := r.pool.Exec(ctx, query,
		user.UID, user.Name, user.Email, string(user.Role), string(user.Status),
		user.City, user.TeamID, user.ManagerUserID, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListAll lista todos los perfiles ordenados por fecha de creación.
func (r *UserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListByTeam lista los perfiles de un equipo ordenados por fecha de creación.
func (r *UserRepo) ListByTeam(ctx context.Context, teamID string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE team_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, teamID)
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, user)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role, status string
	err := row.Scan(
		&u.UID, &u.Name, &u.Email, &role, &status,
		&u.City, &u.TeamID, &u.ManagerUserID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	u.Status = entity.UserStatus(status)
	return &u, nil
}
