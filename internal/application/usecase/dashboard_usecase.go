package usecase

import (
	"context"
	"time"

	"github.com/hylatrack/leads-api/internal/application/dto"
	"github.com/hylatrack/leads-api/internal/domain/entity"
)

// pendingAfter antigüedad a partir de la cual un lead NUEVO requiere seguimiento.
const pendingAfter = 3 * 24 * time.Hour

// DashboardUseCase arma el tablero: tarjetas de resumen y leads pendientes
// de seguimiento, siempre sobre los leads visibles para el actor.
type DashboardUseCase struct {
	leads *LeadUseCase
}

// NewDashboardUseCase construye el tablero sobre el ciclo de vida de leads.
func NewDashboardUseCase(leads *LeadUseCase) *DashboardUseCase {
	return &DashboardUseCase{leads: leads}
}

// Summary calcula las tarjetas y la lista de pendientes.
// Pendiente: lead NUEVO con más de tres días sin avance, o lead con demo ya
// realizada (hay que cerrar la venta o marcar no interesado).
func (uc *DashboardUseCase) Summary(ctx context.Context, actor *entity.User) (*dto.DashboardResponse, error) {
	leads, err := uc.leads.List(ctx, actor, "")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := &dto.DashboardResponse{Pendientes: []*dto.LeadResponse{}}
	for _, lead := range leads {
		if lead.Status != entity.LeadNoInteresado {
			out.Cards.Activos++
		}
		switch lead.Status {
		case entity.LeadDemoAgendada:
			out.Cards.DemoAgendada++
		case entity.LeadVentaCerrada:
			out.Cards.VentaCerrada++
		}

		switch {
		case lead.Status == entity.LeadNuevo && lead.CreatedAt.Before(now.Add(-pendingAfter)):
			out.Pendientes = append(out.Pendientes, dto.ToLeadResponse(lead))
		case lead.Status == entity.LeadDemoRealizada:
			out.Pendientes = append(out.Pendientes, dto.ToLeadResponse(lead))
		}
	}
	return out, nil
}
