package dto

import (
	"time"

	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/pkg/walink"
)

// CreateLeadRequest entrada para crear un lead.
type CreateLeadRequest struct {
	FirstName      string `json:"first_name" validate:"required,min=1,max=200"`
	LastName       string `json:"last_name"`
	Occupation     string `json:"occupation"`
	WhatsappNumber string `json:"whatsapp_number" validate:"required"`
	AddressLine    string `json:"address_line"`
	City           string `json:"city"`
	Region         string `json:"region"`
	Country        string `json:"country"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
	DemoUserID     string `json:"demo_user_id"`
}

// UpdateLeadRequest entrada parcial para editar un lead. Los campos nil no se tocan.
type UpdateLeadRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Occupation     *string `json:"occupation"`
	WhatsappNumber *string `json:"whatsapp_number"`
	AddressLine    *string `json:"address_line"`
	City           *string `json:"city"`
	Region         *string `json:"region"`
	Country        *string `json:"country"`
	Status         *string `json:"status"`
	Notes          *string `json:"notes"`
	OwnerUserID    *string `json:"owner_user_id"`
	DemoUserID     *string `json:"demo_user_id"`
}

// QuickStatusRequest entrada de la acción rápida de cambio de estado.
type QuickStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignDemoRequest entrada de la acción rápida de asignación de demo.
// DemoUserID vacío limpia la asignación.
type AssignDemoRequest struct {
	DemoUserID string `json:"demo_user_id"`
}

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Occupation     string    `json:"occupation"`
	WhatsappNumber string    `json:"whatsapp_number"`
	AddressLine    string    `json:"address_line"`
	City           string    `json:"city"`
	Region         string    `json:"region"`
	Country        string    `json:"country"`
	Status         string    `json:"status"`
	StatusLabel    string    `json:"status_label"`
	Notes          string    `json:"notes"`
	OwnerUserID    string    `json:"owner_user_id"`
	DemoUserID     *string   `json:"demo_user_id"`
	TeamID         string    `json:"team_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LeadDetailResponse ficha completa del lead: enlaces profundos incluidos.
type LeadDetailResponse struct {
	LeadResponse
	WaLink          string `json:"wa_link"`
	WaPrefilledLink string `json:"wa_prefilled_link"`
	MapsLink        string `json:"maps_link"`
}

// LeadImageResponse metadatos de una imagen con su URL firmada vigente.
type LeadImageResponse struct {
	ID         string    `json:"id"`
	LeadID     string    `json:"lead_id"`
	URL        string    `json:"url"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// DashboardResponse tarjetas de resumen y leads pendientes de seguimiento.
type DashboardResponse struct {
	Cards      DashboardCards  `json:"cards"`
	Pendientes []*LeadResponse `json:"pendientes"`
}

// DashboardCards contadores del tablero.
type DashboardCards struct {
	Activos      int `json:"activos"`
	DemoAgendada int `json:"demo_agendada"`
	VentaCerrada int `json:"venta_cerrada"`
}

// ToLeadResponse convierte la entidad al DTO de salida.
func ToLeadResponse(l *entity.Lead) *LeadResponse {
	if l == nil {
		return nil
	}
	return &LeadResponse{
		ID:             l.ID,
		FirstName:      l.FirstName,
		LastName:       l.LastName,
		Occupation:     l.Occupation,
		WhatsappNumber: l.WhatsappNumber,
		AddressLine:    l.AddressLine,
		City:           l.City,
		Region:         l.Region,
		Country:        l.Country,
		Status:         string(l.Status),
		StatusLabel:    l.Status.Label(),
		Notes:          l.Notes,
		OwnerUserID:    l.OwnerUserID,
		DemoUserID:     l.DemoUserID,
		TeamID:         l.TeamID,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// ToLeadDetailResponse arma la ficha con los enlaces de WhatsApp y Maps.
// sellerName personaliza el mensaje precargado de WhatsApp.
func ToLeadDetailResponse(l *entity.Lead, sellerName string) *LeadDetailResponse {
	if l == nil {
		return nil
	}
	message := "Hola " + l.FirstName + ", soy " + sellerName + ". " +
		"Te escribo por la demostración de HYLA. ¿Te acomoda coordinar un horario?"
	return &LeadDetailResponse{
		LeadResponse:    *ToLeadResponse(l),
		WaLink:          walink.Link(l.WhatsappNumber),
		WaPrefilledLink: walink.PrefilledLink(l.WhatsappNumber, message),
		MapsLink:        walink.MapsLink(l.AddressLine, l.City, l.Region, l.Country),
	}
}

// ToLeadImageResponse convierte la entidad al DTO de salida.
func ToLeadImageResponse(img *entity.LeadImage) *LeadImageResponse {
	if img == nil {
		return nil
	}
	return &LeadImageResponse{
		ID:         img.ID,
		LeadID:     img.LeadID,
		URL:        img.URL,
		UploadedBy: img.UploadedBy,
		UploadedAt: img.UploadedAt,
	}
}
