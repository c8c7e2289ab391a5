// Package audit registra cada mutación en la bitácora append-only.
// La escritura es best-effort: un fallo del backend se loguea en warn y no
// revierte la mutación principal, que ya quedó confirmada.
package audit

import (
	"context"

	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/internal/domain/repository"
	"github.com/hylatrack/leads-api/pkg/logger"
)

// DefaultListLimit entradas que se devuelven si el caller no indica límite.
const DefaultListLimit = 20

// Recorder escribe y lee la bitácora de auditoría.
type Recorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder con el puerto de persistencia y el logger.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record agrega una entrada con el timestamp actual. Nunca devuelve error:
// si el append falla, se deja constancia en el log y el caller sigue su curso.
func (r *Recorder) Record(
	ctx context.Context,
	actor *entity.User,
	action entity.AuditAction,
	entityType, entityID, teamID string,
	before, after map[string]any,
) {
	if before == nil {
		before = map[string]any{}
	}
	if after == nil {
		after = map[string]any{}
	}
	entry := &entity.AuditLogEntry{
		ActorUserID: actor.UID,
		ActorName:   actor.Name,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		TeamID:      teamID,
		Before:      before,
		After:       after,
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.log.Warn().
			Err(err).
			Str("action", string(action)).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("no se pudo registrar la entrada de auditoría")
	}
}

// ListRecent devuelve las últimas entradas de una entidad, por timestamp descendente.
func (r *Recorder) ListRecent(ctx context.Context, entityType, entityID string, limit int) ([]*entity.AuditLogEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return r.repo.ListRecent(ctx, entityType, entityID, limit)
}
