package dto

import (
	"time"

	"github.com/hylatrack/leads-api/internal/domain/entity"
)

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en el gateway de identidad).
type CreateUserRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Role          string `json:"role" validate:"required,oneof=ADMIN JEFE VENDEDOR RECLUTA"`
	Status        string `json:"status" validate:"required,oneof=ACTIVO PAUSADO BLOQUEADO PENDIENTE"`
	TeamID        string `json:"team_id"`
	ManagerUserID string `json:"manager_user_id"`
	City          string `json:"city"`
}

// UpdateUserRequest entrada parcial para editar un usuario. Los campos nil no se tocan.
type UpdateUserRequest struct {
	Name          *string `json:"name"`
	City          *string `json:"city"`
	Role          *string `json:"role"`
	Status        *string `json:"status"`
	TeamID        *string `json:"team_id"`
	ManagerUserID *string `json:"manager_user_id"`
}

// UserResponse salida de un usuario (sin credenciales).
type UserResponse struct {
	UID           string    `json:"uid"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	City          string    `json:"city"`
	TeamID        string    `json:"team_id"`
	ManagerUserID *string   `json:"manager_user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToUserResponse convierte la entidad al DTO de salida.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		UID:           u.UID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		Status:        string(u.Status),
		City:          u.City,
		TeamID:        u.TeamID,
		ManagerUserID: u.ManagerUserID,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
