package audit

import (
	"time"

	"github.com/hylatrack/leads-api/internal/domain/entity"
)

// Snapshots completos de cada entidad para los campos before/after de la bitácora.
// Se serializan como JSONB; los timestamps van en RFC 3339 para que el snapshot
// sea legible sin conocer el esquema.

// UserSnapshot captura el estado completo de un perfil.
func UserSnapshot(u *entity.User) map[string]any {
	if u == nil {
		return map[string]any{}
	}
	var manager any
	if u.ManagerUserID != nil {
		manager = *u.ManagerUserID
	}
	return map[string]any{
		"uid":             u.UID,
		"name":            u.Name,
		"email":           u.Email,
		"role":            string(u.Role),
		"status":          string(u.Status),
		"city":            u.City,
		"team_id":         u.TeamID,
		"manager_user_id": manager,
		"created_at":      u.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":      u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// LeadSnapshot captura el estado completo de un lead.
func LeadSnapshot(l *entity.Lead) map[string]any {
	if l == nil {
		return map[string]any{}
	}
	var demoUser any
	if l.DemoUserID != nil {
		demoUser = *l.DemoUserID
	}
	return map[string]any{
		"id":              l.ID,
		"first_name":      l.FirstName,
		"last_name":       l.LastName,
		"occupation":      l.Occupation,
		"whatsapp_number": l.WhatsappNumber,
		"address_line":    l.AddressLine,
		"city":            l.City,
		"region":          l.Region,
		"country":         l.Country,
		"status":          string(l.Status),
		"notes":           l.Notes,
		"owner_user_id":   l.OwnerUserID,
		"demo_user_id":    demoUser,
		"team_id":         l.TeamID,
		"created_at":      l.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":      l.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ImageSnapshot captura los metadatos de una imagen recién subida.
func ImageSnapshot(img *entity.LeadImage) map[string]any {
	if img == nil {
		return map[string]any{}
	}
	return map[string]any{
		"id":           img.ID,
		"lead_id":      img.LeadID,
		"storage_path": img.StoragePath,
		"url":          img.URL,
		"uploaded_by":  img.UploadedBy,
		"uploaded_at":  img.UploadedAt.UTC().Format(time.RFC3339),
	}
}
