package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL.
type LeadRepo struct {
	pool *pgxpool.Pool
}

// NewLeadRepository construye el adaptador de persistencia para leads.
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{pool: pool}
}

const leadColumns = `id, first_name, last_name, occupation, whatsapp_number, address_line,
		city, region, country, status, notes, owner_user_id, demo_user_id, team_id,
		created_at, updated_at`

// Create persiste un lead nuevo.
func (r *LeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.pool.Exec(ctx, query,
		lead.ID, lead.FirstName, lead.LastName, lead.Occupation, lead.WhatsappNumber,
		lead.AddressLine, lead.City, lead.Region, lead.Country, string(lead.Status),
		lead.Notes, lead.OwnerUserID, lead.DemoUserID, lead.TeamID,
		lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene un lead por ID; nil si no existe.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// Update persiste el lead completo.
func (r *LeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET first_name = $2, last_name = $3, occupation = $4, whatsapp_number = $5,
		    address_line = $6, city = $7, region = $8, country = $9, status = $10,
		    notes = $11, owner_user_id = $12, demo_user_id = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		lead.ID, lead.FirstName, lead.LastName, lead.Occupation, lead.WhatsappNumber,
		lead.AddressLine, lead.City, lead.Region, lead.Country, string(lead.Status),
		lead.Notes, lead.OwnerUserID, lead.DemoUserID, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

// List devuelve los leads que pasan el filtro, por created_at descendente.
// Las cláusulas se componen solo para los campos presentes del filtro.
func (r *LeadRepo) List(ctx context.Context, filter repository.LeadFilter) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`
	var (
		conditions []string
		args       []any
	)
	if filter.TeamID != "" {
		args = append(args, filter.TeamID)
		conditions = append(conditions, fmt.Sprintf("team_id = $%d", len(args)))
	}
	if filter.OwnerUserID != "" {
		args = append(args, filter.OwnerUserID)
		conditions = append(conditions, fmt.Sprintf("owner_user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, lead)
	}
	return list, rows.Err()
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	var status string
	err := row.Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.Occupation, &l.WhatsappNumber,
		&l.AddressLine, &l.City, &l.Region, &l.Country, &status,
		&l.Notes, &l.OwnerUserID, &l.DemoUserID, &l.TeamID,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Status = entity.LeadStatus(status)
	return &l, nil
}
