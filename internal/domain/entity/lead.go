package entity

import "time"

// LeadStatus estado de un lead dentro del pipeline de ventas.
type LeadStatus string

// Estados del pipeline, en orden fijo (se usa para filtros y UI).
const (
	LeadNuevo         LeadStatus = "NUEVO"
	LeadContactado    LeadStatus = "CONTACTADO"
	LeadDemoAgendada  LeadStatus = "DEMO_AGENDADA"
	LeadDemoRealizada LeadStatus = "DEMO_REALIZADA"
	LeadVentaCerrada  LeadStatus = "VENTA_CERRADA"
	LeadNoInteresado  LeadStatus = "NO_INTERESADO"
)

// Valid indica si el estado es uno de los seis valores definidos.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNuevo, LeadContactado, LeadDemoAgendada, LeadDemoRealizada, LeadVentaCerrada, LeadNoInteresado:
		return true
	}
	return false
}

// Label etiqueta legible en español para UI.
func (s LeadStatus) Label() string {
	switch s {
	case LeadNuevo:
		return "Nuevo"
	case LeadContactado:
		return "Contactado"
	case LeadDemoAgendada:
		return "Demo Agendada"
	case LeadDemoRealizada:
		return "Demo Realizada"
	case LeadVentaCerrada:
		return "Venta Cerrada"
	case LeadNoInteresado:
		return "No Interesado"
	}
	return string(s)
}

// LeadStatuses devuelve los estados en el orden del pipeline.
func LeadStatuses() []LeadStatus {
	return []LeadStatus{
		LeadNuevo, LeadContactado, LeadDemoAgendada,
		LeadDemoRealizada, LeadVentaCerrada, LeadNoInteresado,
	}
}

// Lead representa un cliente potencial en seguimiento.
// OwnerUserID y TeamID quedan fijos al momento de crearlo; los leads nunca se eliminan.
type Lead struct {
	ID             string
	FirstName      string
	LastName       string
	Occupation     string
	WhatsappNumber string // solo dígitos, 9-15 caracteres
	AddressLine    string
	City           string
	Region         string
	Country        string
	Status         LeadStatus
	Notes          string
	OwnerUserID    string
	DemoUserID     *string // nil si no hay encargado de demo asignado
	TeamID         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
