package entity

import "time"

// AuditAction acción registrada en la bitácora.
type AuditAction string

// Acciones auditadas. Una entrada por mutación.
const (
	ActionCreate           AuditAction = "CREATE"
	ActionUpdate           AuditAction = "UPDATE"
	ActionStatusChange     AuditAction = "STATUS_CHANGE"
	ActionAssign           AuditAction = "ASSIGN"
	ActionUserStatusChange AuditAction = "USER_STATUS_CHANGE"
	ActionImageUpload      AuditAction = "IMAGE_UPLOAD"
)

// Tipos de entidad auditada.
const (
	EntityLead  = "lead"
	EntityUser  = "user"
	EntityImage = "image"
)

// AuditLogEntry registro inmutable de un cambio: snapshots completos antes y después.
// La tabla es append-only; las entradas nunca se modifican ni eliminan.
type AuditLogEntry struct {
	ID          int64
	Timestamp   time.Time
	ActorUserID string
	ActorName   string
	Action      AuditAction
	EntityType  string
	EntityID    string
	TeamID      string
	Before      map[string]any // vacío en creaciones
	After       map[string]any // vacío si no aplica
}
