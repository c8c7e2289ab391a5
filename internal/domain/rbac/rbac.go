// Package rbac contiene las reglas puras de autorización por rol y equipo.
// Todas las funciones son totales: nunca fallan con entrada bien formada y no
// tienen efectos secundarios. La visibilidad entre equipos se decide únicamente aquí.
package rbac

import "github.com/hylatrack/leads-api/internal/domain/entity"

// CanManageUser indica si actor puede administrar (ver/editar) el perfil target.
// ADMIN administra a cualquiera; JEFE solo a usuarios de su propio equipo.
// La auto-gestión de roles no elevados no es caso especial: cae en el false final.
func CanManageUser(actor, target *entity.User) bool {
	if actor.Role == entity.RoleAdmin {
		return true
	}
	if actor.Role == entity.RoleJefe {
		return target.TeamID == actor.TeamID
	}
	return false
}

// CanAccessLead indica si actor puede ver/editar el lead.
// ADMIN accede a todo; JEFE a los leads de su equipo; el resto solo a los propios.
func CanAccessLead(actor *entity.User, lead *entity.Lead) bool {
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleJefe:
		return lead.TeamID == actor.TeamID
	}
	return lead.OwnerUserID == actor.UID
}

// CanReassignLead indica si actor puede cambiar el dueño del lead.
// No se valida la elegibilidad del nuevo dueño; eso queda en manos del caller.
func CanReassignLead(actor *entity.User, lead *entity.Lead, newOwnerID string) bool {
	_ = newOwnerID
	if actor.Role == entity.RoleAdmin {
		return true
	}
	return actor.Role == entity.RoleJefe && lead.TeamID == actor.TeamID
}
