package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación del puerto AuditLogRepository sobre PostgreSQL.
// La tabla audit_logs es append-only: solo INSERT y SELECT.
type AuditLogRepo struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository construye el adaptador de persistencia para la bitácora.
func NewAuditLogRepository(pool *pgxpool.Pool) *AuditLogRepo {
	return &AuditLogRepo{pool: pool}
}

// Append inserta una entrada con el timestamp actual si no viene fijado.
// Los snapshots before/after se guardan como JSONB.
func (r *AuditLogRepo) Append(ctx context.Context, entry *entity.AuditLogEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	query := `
		INSERT INTO audit_logs (timestamp, actor_user_id, actor_name, action, entity_type, entity_id, team_id, before, after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		ts, entry.ActorUserID, entry.ActorName, string(entry.Action),
		entry.EntityType, entry.EntityID, entry.TeamID, entry.Before, entry.After,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas entradas de la entidad por timestamp descendente.
func (r *AuditLogRepo) ListRecent(ctx context.Context, entityType, entityID string, limit int) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT id, timestamp, actor_user_id, actor_name, action, entity_type, entity_id, team_id, before, after
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY timestamp DESC
		LIMIT $3`
	rows, err := r.pool.Query(ctx, query, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		var action string
		err := rows.Scan(
			&e.ID, &e.Timestamp, &e.ActorUserID, &e.ActorName, &action,
			&e.EntityType, &e.EntityID, &e.TeamID, &e.Before, &e.After,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		e.Action = entity.AuditAction(action)
		list = append(list, &e)
	}
	return list, rows.Err()
}
