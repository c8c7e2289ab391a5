package dto

import (
	"time"

	"github.com/hylatrack/leads-api/internal/domain/entity"
)

// AuditLogResponse entrada de bitácora con snapshots completos antes/después.
type AuditLogResponse struct {
	Timestamp   time.Time      `json:"timestamp"`
	ActorUserID string         `json:"actor_user_id"`
	ActorName   string         `json:"actor_name"`
	Action      string         `json:"action"`
	EntityType  string         `json:"entity_type"`
	EntityID    string         `json:"entity_id"`
	TeamID      string         `json:"team_id"`
	Before      map[string]any `json:"before"`
	After       map[string]any `json:"after"`
}

// ToAuditLogResponse convierte la entidad al DTO de salida.
func ToAuditLogResponse(e *entity.AuditLogEntry) *AuditLogResponse {
	if e == nil {
		return nil
	}
	return &AuditLogResponse{
		Timestamp:   e.Timestamp,
		ActorUserID: e.ActorUserID,
		ActorName:   e.ActorName,
		Action:      string(e.Action),
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		TeamID:      e.TeamID,
		Before:      e.Before,
		After:       e.After,
	}
}
