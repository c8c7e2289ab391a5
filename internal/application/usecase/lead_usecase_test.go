package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hylatrack/leads-api/internal/application/dto"
	"github.com/hylatrack/leads-api/internal/application/usecase"
	"github.com/hylatrack/leads-api/internal/domain"
	"github.com/hylatrack/leads-api/internal/domain/entity"
)

type leadFixture struct {
	uc     *usecase.LeadUseCase
	leads  *memLeadRepo
	images *memImageRepo
	users  *memUserRepo
	audit  *memAuditRepo
	blobs  *memBlobStore
}

func newLeadFixture(t *testing.T, users ...*entity.User) *leadFixture {
	t.Helper()
	f := &leadFixture{
		leads:  newMemLeadRepo(),
		images: &memImageRepo{},
		users:  newMemUserRepo(),
		audit:  &memAuditRepo{},
		blobs:  newMemBlobStore(),
	}
	for _, u := range users {
		require.NoError(t, f.users.Create(context.Background(), u))
	}
	f.uc = usecase.NewLeadUseCase(f.leads, f.images, f.users, f.blobs, newTestRecorder(f.audit))
	return f
}

func vendedor(uid, team string) *entity.User {
	return &entity.User{UID: uid, Name: "Vendedor " + uid, Role: entity.RoleVendedor, Status: entity.UserActivo, TeamID: team}
}

func admin(uid string) *entity.User {
	return &entity.User{UID: uid, Name: "Admin", Role: entity.RoleAdmin, Status: entity.UserActivo, TeamID: "central"}
}

func jefe(uid, team string) *entity.User {
	return &entity.User{UID: uid, Name: "Jefe " + uid, Role: entity.RoleJefe, Status: entity.UserActivo, TeamID: team}
}

func TestLeadCreate_HeredaDuenoYEquipoDelCreador(t *testing.T) {
	actor := vendedor("v1", "norte")
	f := newLeadFixture(t, actor)

	id, err := f.uc.Create(context.Background(), actor, dto.CreateLeadRequest{
		FirstName:      "María",
		WhatsappNumber: "56912345678",
	})
	require.NoError(t, err)

	lead, err := f.uc.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "v1", lead.OwnerUserID)
	assert.Equal(t, "norte", lead.TeamID)
	assert.Equal(t, entity.LeadNuevo, lead.Status)
	assert.Equal(t, "Chile", lead.Country, "país por defecto")

	entries := f.audit.byAction(entity.ActionCreate)
	require.Len(t, entries, 1, "la creación deja exactamente una entrada")
	assert.Empty(t, entries[0].Before)
	assert.Equal(t, "María", entries[0].After["first_name"])
}

func TestLeadCreate_VendedorQuedaComoEncargadoDeDemo(t *testing.T) {
	actor := vendedor("v1", "norte")
	f := newLeadFixture(t, actor)

	id, err := f.uc.Create(context.Background(), actor, dto.CreateLeadRequest{
		FirstName:      "Pedro",
		WhatsappNumber: "56911112222",
	})
	require.NoError(t, err)

	lead, _ := f.uc.Get(context.Background(), id)
	require.NotNil(t, lead.DemoUserID)
	assert.Equal(t, "v1", *lead.DemoUserID)
}

func TestLeadCreate_WhatsappInvalido(t *testing.T) {
	actor := vendedor("v1", "norte")
	f := newLeadFixture(t, actor)

	_, err := f.uc.Create(context.Background(), actor, dto.CreateLeadRequest{
		FirstName:      "Ana",
		WhatsappNumber: "+56 9 1234",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWhatsapp)
}

func TestLeadCreate_DemoUserConRolNoAsignable(t *testing.T) {
	actor := admin("a1")
	recluta := &entity.User{UID: "r1", Name: "Recluta", Role: entity.RoleRecluta, Status: entity.UserActivo, TeamID: "norte"}
	f := newLeadFixture(t, actor, recluta)

	_, err := f.uc.Create(context.Background(), actor, dto.CreateLeadRequest{
		FirstName:      "Ana",
		WhatsappNumber: "56911112222",
		DemoUserID:     "r1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDemoUser)
}

func TestLeadUpdate_CambioDeEstado_AuditaStatusChange(t *testing.T) {
	actor := vendedor("v1", "norte")
	f := newLeadFixture(t, actor)
	id, err := f.uc.Create(context.Background(), actor, dto.CreateLeadRequest{
		FirstName: "María", WhatsappNumber: "56912345678",
	})
	require.NoError(t, err)

	out, err := f.uc.QuickStatus(context.Background(), actor, id, "CONTACTADO")
	require.NoError(t, err)
	assert.Equal(t, entity.LeadContactado, out.Status)

	entries := f.audit.byAction(entity.ActionStatusChange)
	require.Len(t, entries, 1)
	assert.Equal(t, "NUEVO", entries[0].Before["status"])
	assert.Equal(t, "CONTACTADO", entries[0].After["status"])
}

func TestLeadUpdate_EstadoInvalido(t *testing.T) {
	actor := vendedor("v1", "norte")
	f := newLeadFixture(t, actor)
	id, err := f.uc.Create(context.Background(), actor, dto.CreateLeadRequest{
		FirstName: "María", WhatsappNumber: "56912345678",
	})
	require.NoError(t, err)

	_, err = f.uc.QuickStatus(context.Background(), actor, id, "GANADO")
	assert.ErrorIs(t, err, domain.ErrInvalidLeadStatus)
}

// Si el mismo update cambia dueño y estado, la acción registrada es ASSIGN.
func TestLeadUpdate_ReasignacionTienePrecedenciaSobreEstado(t *testing.T) {
	actor := admin("a1")
	v2 := vendedor("v2", "norte")
	f := newLeadFixture(t, actor, v2)
	id, err := f.uc.Create(context.Background(), actor, dto.CreateLeadRequest{
		FirstName: "María", WhatsappNumber: "56912345678",
	})
	require.NoError(t, err)

	status := "CONTACTADO"
	owner := "v2"
	out, err := f.uc.Update(context.Background(), actor, id, dto.UpdateLeadRequest{
		Status:      &status,
		OwnerUserID: &owner,
	})
	require.NoError(t, err)
	assert.Equal(t, "v2", out.OwnerUserID)
	assert.Equal(t, entity.LeadContactado, out.Status)

	require.Len(t, f.audit.byAction(entity.ActionAssign), 1)
	assert.Empty(t, f.audit.byAction(entity.ActionStatusChange))
}

// Un vendedor no reasigna: el cambio de dueño se ignora en silencio y el resto procede.
func TestLeadUpdate_VendedorNoReasigna_RestoDeLosCambiosProcede(t *testing.T) {
	actor := vendedor("v1", "norte")
	v2 := vendedor("v2", "norte")
	f := newLeadFixture(t, actor, v2)
	id, err := f.uc.Create(context.Background(), actor, dto.CreateLeadRequest{
		FirstName: "María", WhatsappNumber: "56912345678",
	})
	require.NoError(t, err)

	owner := "v2"
	notes := "visita coordinada"
	out, err := f.uc.Update(context.Background(), actor, id, dto.UpdateLeadRequest{
		OwnerUserID: &owner,
		Notes:       &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "v1", out.OwnerUserID, "el dueño no cambia")
	assert.Equal(t, "visita coordinada", out.Notes)

	require.Empty(t, f.audit.byAction(entity.ActionAssign))
	require.Len(t, f.audit.byAction(entity.ActionUpdate), 1)
}

func TestLeadQuickAssignDemo_IdVacioLimpia(t *testing.T) {
	actor := vendedor("v1", "norte")
	f := newLeadFixture(t, actor)
	id, err := f.uc.Create(context.Background(), actor, dto.CreateLeadRequest{
		FirstName: "María", WhatsappNumber: "56912345678",
	})
	require.NoError(t, err)

	out, err := f.uc.QuickAssignDemo(context.Background(), actor, id, "")
	require.NoError(t, err)
	assert.Nil(t, out.DemoUserID)
}

func TestLeadList_VendedorSoloVeLosSuyos(t *testing.T) {
	v1 := vendedor("v1", "norte")
	v2 := vendedor("v2", "norte")
	f := newLeadFixture(t, v1, v2)

	_, err := f.uc.Create(context.Background(), v1, dto.CreateLeadRequest{FirstName: "A", WhatsappNumber: "56911111111"})
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), v2, dto.CreateLeadRequest{FirstName: "B", WhatsappNumber: "56922222222"})
	require.NoError(t, err)

	leads, err := f.uc.List(context.Background(), v1, "")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "v1", leads[0].OwnerUserID)
}

func TestLeadList_JefeVeSuEquipo_AdminVeTodo(t *testing.T) {
	j := jefe("j1", "norte")
	v1 := vendedor("v1", "norte")
	v2 := vendedor("v2", "sur")
	a := admin("a1")
	f := newLeadFixture(t, j, v1, v2, a)

	_, err := f.uc.Create(context.Background(), v1, dto.CreateLeadRequest{FirstName: "A", WhatsappNumber: "56911111111"})
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), v2, dto.CreateLeadRequest{FirstName: "B", WhatsappNumber: "56922222222"})
	require.NoError(t, err)

	delEquipo, err := f.uc.List(context.Background(), j, "")
	require.NoError(t, err)
	require.Len(t, delEquipo, 1)
	assert.Equal(t, "norte", delEquipo[0].TeamID)

	todos, err := f.uc.List(context.Background(), a, "")
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestLeadList_FiltroDeEstadoInvalido(t *testing.T) {
	a := admin("a1")
	f := newLeadFixture(t, a)

	_, err := f.uc.List(context.Background(), a, "CERRADO")
	assert.ErrorIs(t, err, domain.ErrInvalidLeadStatus)
}

func TestUploadImage_FormatoNoPermitido(t *testing.T) {
	actor := vendedor("v1", "norte")
	f := newLeadFixture(t, actor)

	_, err := f.uc.UploadImage(context.Background(), actor, "lead-1", "animacion.gif", "image/gif", []byte("gif"))
	assert.ErrorIs(t, err, domain.ErrImageFormat)
}

func TestUploadImage_DemasiadoGrande(t *testing.T) {
	actor := vendedor("v1", "norte")
	f := newLeadFixture(t, actor)

	data := make([]byte, usecase.MaxImageBytes+1)
	_, err := f.uc.UploadImage(context.Background(), actor, "lead-1", "casa.png", "image/png", data)
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)
}

func TestUploadImage_PersisteYAudita(t *testing.T) {
	actor := vendedor("v1", "norte")
	f := newLeadFixture(t, actor)
	id, err := f.uc.Create(context.Background(), actor, dto.CreateLeadRequest{
		FirstName: "María", WhatsappNumber: "56912345678",
	})
	require.NoError(t, err)

	data := make([]byte, 1<<20)
	img, err := f.uc.UploadImage(context.Background(), actor, id, "fachada.JPG", "image/jpeg", data)
	require.NoError(t, err)
	assert.Equal(t, id, img.LeadID)
	assert.Equal(t, "v1", img.UploadedBy)
	assert.True(t, strings.HasPrefix(img.StoragePath, "leads/"+id+"/"), "la ruta se deriva del lead")
	assert.True(t, strings.HasSuffix(img.StoragePath, ".jpg"), "la extensión se normaliza a minúsculas")
	assert.NotEmpty(t, img.URL)

	_, ok := f.blobs.objects[img.StoragePath]
	assert.True(t, ok, "el binario quedó subido")
	require.Len(t, f.audit.byAction(entity.ActionImageUpload), 1)
}

func TestListImages_RefrescaURLsFirmadas(t *testing.T) {
	actor := vendedor("v1", "norte")
	f := newLeadFixture(t, actor)
	f.images.images = append(f.images.images, entity.LeadImage{
		ID: "img-1", LeadID: "lead-1", StoragePath: "leads/lead-1/img-1.png", URL: "https://storage.test/vencida",
	})

	images, err := f.uc.ListImages(context.Background(), "lead-1")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "https://storage.test/leads/lead-1/img-1.png?firma=abc", images[0].URL)
}
