package entity

import "time"

// Role rol de un usuario dentro del sistema.
type Role string

// Roles válidos para User.
const (
	RoleAdmin    Role = "ADMIN"
	RoleJefe     Role = "JEFE"
	RoleVendedor Role = "VENDEDOR"
	RoleRecluta  Role = "RECLUTA"
)

// Valid indica si el rol es uno de los valores cerrados del enum.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleJefe, RoleVendedor, RoleRecluta:
		return true
	}
	return false
}

// CanAssignDemo indica si usuarios con este rol pueden quedar asignados como encargados de demo.
func (r Role) CanAssignDemo() bool {
	return r == RoleJefe || r == RoleVendedor
}

// Roles devuelve los roles en orden fijo (para formularios y validación).
func Roles() []Role {
	return []Role{RoleAdmin, RoleJefe, RoleVendedor, RoleRecluta}
}

// UserStatus estado de la cuenta de un usuario.
type UserStatus string

// Estados válidos para User. Los usuarios nunca se eliminan: pasan a BLOQUEADO.
const (
	UserActivo    UserStatus = "ACTIVO"
	UserPausado   UserStatus = "PAUSADO"
	UserBloqueado UserStatus = "BLOQUEADO"
	UserPendiente UserStatus = "PENDIENTE"
)

// Valid indica si el estado es uno de los valores cerrados del enum.
func (s UserStatus) Valid() bool {
	switch s {
	case UserActivo, UserPausado, UserBloqueado, UserPendiente:
		return true
	}
	return false
}

// UserStatuses devuelve los estados en orden fijo.
func UserStatuses() []UserStatus {
	return []UserStatus{UserActivo, UserPausado, UserBloqueado, UserPendiente}
}

// DefaultTeamID equipo asignado cuando no se especifica otro.
const DefaultTeamID = "default"

// User representa el perfil de un usuario del sistema.
// El UID coincide con el ID de su Identity en el proveedor de identidad.
type User struct {
	UID           string
	Name          string
	Email         string
	Role          Role
	Status        UserStatus
	City          string
	TeamID        string  // siempre presente; "default" si no se asigna equipo
	ManagerUserID *string // nil si no tiene jefe directo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
