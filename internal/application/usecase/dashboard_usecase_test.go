package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hylatrack/leads-api/internal/application/usecase"
	"github.com/hylatrack/leads-api/internal/domain/entity"
)

func seedLead(f *leadFixture, id string, owner, team string, status entity.LeadStatus, age time.Duration) {
	created := time.Now().UTC().Add(-age)
	f.leads.leads[id] = entity.Lead{
		ID: id, FirstName: "Lead " + id, WhatsappNumber: "56900000000",
		Status: status, OwnerUserID: owner, TeamID: team,
		CreatedAt: created, UpdatedAt: created,
	}
}

func TestDashboardSummary_TarjetasYPendientes(t *testing.T) {
	actor := admin("a1")
	f := newLeadFixture(t, actor)
	dash := usecase.NewDashboardUseCase(f.uc)

	seedLead(f, "l1", "v1", "norte", entity.LeadNuevo, time.Hour)         // nuevo reciente, no pendiente
	seedLead(f, "l2", "v1", "norte", entity.LeadNuevo, 4*24*time.Hour)    // nuevo estancado, pendiente
	seedLead(f, "l3", "v1", "norte", entity.LeadDemoAgendada, time.Hour)  // tarjeta demo agendada
	seedLead(f, "l4", "v2", "sur", entity.LeadDemoRealizada, time.Hour)   // pendiente de cierre
	seedLead(f, "l5", "v2", "sur", entity.LeadVentaCerrada, time.Hour)    // tarjeta venta cerrada
	seedLead(f, "l6", "v2", "sur", entity.LeadNoInteresado, time.Hour)    // fuera de activos

	out, err := dash.Summary(context.Background(), actor)
	require.NoError(t, err)

	assert.Equal(t, 5, out.Cards.Activos, "todos menos NO_INTERESADO")
	assert.Equal(t, 1, out.Cards.DemoAgendada)
	assert.Equal(t, 1, out.Cards.VentaCerrada)

	ids := []string{}
	for _, p := range out.Pendientes {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"l2", "l4"}, ids)
}

func TestDashboardSummary_AlcancePorRol(t *testing.T) {
	v1 := vendedor("v1", "norte")
	f := newLeadFixture(t, v1)
	dash := usecase.NewDashboardUseCase(f.uc)

	seedLead(f, "l1", "v1", "norte", entity.LeadVentaCerrada, time.Hour)
	seedLead(f, "l2", "v2", "sur", entity.LeadVentaCerrada, time.Hour)

	out, err := dash.Summary(context.Background(), v1)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Cards.VentaCerrada, "el vendedor solo cuenta sus propios leads")
}
