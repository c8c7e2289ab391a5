package repository

import (
	"context"

	"github.com/hylatrack/leads-api/internal/domain/entity"
)

// AuditLogRepository define el puerto sobre la tabla append-only de auditoría.
// Las entradas se insertan y se listan; nunca se actualizan ni eliminan.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.AuditLogEntry) error
	// ListRecent devuelve las últimas entradas de la entidad, por timestamp descendente.
	ListRecent(ctx context.Context, entityType, entityID string, limit int) ([]*entity.AuditLogEntry, error)
}
