package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hylatrack/leads-api/internal/application/auth"
	"github.com/hylatrack/leads-api/internal/application/dto"
	"github.com/hylatrack/leads-api/internal/application/usecase"
	"github.com/hylatrack/leads-api/internal/domain"
	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/pkg/config"
)

type userFixture struct {
	uc         *usecase.UserUseCase
	authUC     *auth.AuthUseCase
	users      *memUserRepo
	identities *memIdentityRepo
	audit      *memAuditRepo
}

// newUserFixture arma el directorio con el gateway de identidad real sobre
// repos en memoria, conectados en dos fases igual que en el arranque.
func newUserFixture(t *testing.T, users ...*entity.User) *userFixture {
	t.Helper()
	f := &userFixture{
		users:      newMemUserRepo(),
		identities: newMemIdentityRepo(),
		audit:      &memAuditRepo{},
	}
	for _, u := range users {
		require.NoError(t, f.users.Create(context.Background(), u))
	}
	f.authUC = auth.NewAuthUseCase(f.identities, nil, auth.JWTConfig{
		Secret: "test-secret", ExpMinutes: 60, RefreshExpMinutes: 120, Issuer: "test",
	})
	f.uc = usecase.NewUserUseCase(f.users, f.authUC, newTestRecorder(f.audit), testLogger())
	f.authUC.SetProfileDirectory(f.uc)
	return f
}

func TestUserCreate_AdminCreaConRolYEquipoIndicados(t *testing.T) {
	actor := admin("a1")
	f := newUserFixture(t, actor)

	uid, err := f.uc.Create(context.Background(), actor, dto.CreateUserRequest{
		Name: "Laura", Email: "laura@hyla.cl", Password: "secreta123",
		Role: "VENDEDOR", Status: "ACTIVO", City: "Temuco", TeamID: "sur",
	})
	require.NoError(t, err)

	created, err := f.uc.GetProfile(context.Background(), uid)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, entity.RoleVendedor, created.Role)
	assert.Equal(t, entity.UserActivo, created.Status)
	assert.Equal(t, "sur", created.TeamID)

	identity, err := f.identities.GetByEmail(context.Background(), "laura@hyla.cl")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, identity.ID, created.UID, "el perfil usa el id de la identidad como clave")

	require.Len(t, f.audit.byAction(entity.ActionCreate), 1)
}

// Un JEFE no puede crear roles elevados: el rol pedido se fuerza a RECLUTA y el
// equipo y el jefe directo quedan forzados a los suyos.
func TestUserCreate_JefeNoEscalaRoles(t *testing.T) {
	actor := jefe("j1", "norte")
	f := newUserFixture(t, actor)

	uid, err := f.uc.Create(context.Background(), actor, dto.CreateUserRequest{
		Name: "Intruso", Email: "intruso@hyla.cl", Password: "secreta123",
		Role: "ADMIN", Status: "ACTIVO", TeamID: "otro-equipo",
	})
	require.NoError(t, err)

	created, _ := f.uc.GetProfile(context.Background(), uid)
	assert.Equal(t, entity.RoleRecluta, created.Role)
	assert.Equal(t, "norte", created.TeamID)
	require.NotNil(t, created.ManagerUserID)
	assert.Equal(t, "j1", *created.ManagerUserID)
}

func TestUserCreate_JefePuedeCrearVendedor(t *testing.T) {
	actor := jefe("j1", "norte")
	f := newUserFixture(t, actor)

	uid, err := f.uc.Create(context.Background(), actor, dto.CreateUserRequest{
		Name: "Nuevo Vendedor", Email: "nv@hyla.cl", Password: "secreta123",
		Role: "VENDEDOR", Status: "ACTIVO",
	})
	require.NoError(t, err)

	created, _ := f.uc.GetProfile(context.Background(), uid)
	assert.Equal(t, entity.RoleVendedor, created.Role)
}

func TestUserCreate_EmailConPerfilExistente(t *testing.T) {
	actor := admin("a1")
	f := newUserFixture(t, actor)

	_, err := f.uc.Create(context.Background(), actor, dto.CreateUserRequest{
		Name: "Laura", Email: "laura@hyla.cl", Password: "secreta123",
		Role: "VENDEDOR", Status: "ACTIVO",
	})
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), actor, dto.CreateUserRequest{
		Name: "Laura Dos", Email: "laura@hyla.cl", Password: "otra456",
		Role: "RECLUTA", Status: "ACTIVO",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Identidad sin perfil (alta interrumpida): se reutiliza la identidad y solo se
// crea el perfil, en lugar de señalar email duplicado.
func TestUserCreate_ReparaIdentidadHuerfana(t *testing.T) {
	actor := admin("a1")
	f := newUserFixture(t, actor)

	huerfana, err := f.authUC.CreateIdentity(context.Background(), "huerfana@hyla.cl", "secreta123", "Huérfana")
	require.NoError(t, err)

	uid, err := f.uc.Create(context.Background(), actor, dto.CreateUserRequest{
		Name: "Huérfana", Email: "huerfana@hyla.cl", Password: "secreta123",
		Role: "RECLUTA", Status: "ACTIVO",
	})
	require.NoError(t, err)
	assert.Equal(t, huerfana.ID, uid, "se adjunta el perfil a la identidad existente")
	assert.Len(t, f.identities.identities, 1, "no se duplica la identidad")
}

func TestUserCreate_ManagerIdMalFormadoSeLimpia(t *testing.T) {
	actor := admin("a1")
	f := newUserFixture(t, actor)

	uid, err := f.uc.Create(context.Background(), actor, dto.CreateUserRequest{
		Name: "Laura", Email: "laura@hyla.cl", Password: "secreta123",
		Role: "VENDEDOR", Status: "ACTIVO", ManagerUserID: "no-es-un-uuid",
	})
	require.NoError(t, err)

	created, _ := f.uc.GetProfile(context.Background(), uid)
	assert.Nil(t, created.ManagerUserID)
}

func TestUserCreate_RolInvalido(t *testing.T) {
	actor := admin("a1")
	f := newUserFixture(t, actor)

	_, err := f.uc.Create(context.Background(), actor, dto.CreateUserRequest{
		Name: "X", Email: "x@hyla.cl", Password: "secreta123",
		Role: "GERENTE", Status: "ACTIVO",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUpdate_CambioDeEstado_AuditaUserStatusChange(t *testing.T) {
	actor := admin("a1")
	target := vendedor("v1", "norte")
	f := newUserFixture(t, actor, target)

	status := "PAUSADO"
	out, err := f.uc.Update(context.Background(), actor, "v1", dto.UpdateUserRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.UserPausado, out.Status)

	entries := f.audit.byAction(entity.ActionUserStatusChange)
	require.Len(t, entries, 1)
	assert.Equal(t, "ACTIVO", entries[0].Before["status"])
	assert.Equal(t, "PAUSADO", entries[0].After["status"])
}

func TestUserUpdate_SinCambioDeEstado_AuditaUpdate(t *testing.T) {
	actor := admin("a1")
	target := vendedor("v1", "norte")
	f := newUserFixture(t, actor, target)

	city := "Valdivia"
	_, err := f.uc.Update(context.Background(), actor, "v1", dto.UpdateUserRequest{City: &city})
	require.NoError(t, err)

	require.Len(t, f.audit.byAction(entity.ActionUpdate), 1)
	assert.Empty(t, f.audit.byAction(entity.ActionUserStatusChange))
}

func TestUserUpdate_NoExiste(t *testing.T) {
	actor := admin("a1")
	f := newUserFixture(t, actor)

	name := "Nadie"
	_, err := f.uc.Update(context.Background(), actor, "fantasma", dto.UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserList_JefeSoloVeSuEquipo(t *testing.T) {
	j := jefe("j1", "norte")
	f := newUserFixture(t, j, vendedor("v1", "norte"), vendedor("v2", "sur"), admin("a1"))

	visibles, err := f.uc.List(context.Background(), j)
	require.NoError(t, err)
	require.Len(t, visibles, 2)
	for _, u := range visibles {
		assert.Equal(t, "norte", u.TeamID)
	}

	todos, err := f.uc.List(context.Background(), admin("a1"))
	require.NoError(t, err)
	assert.Len(t, todos, 4)
}

func TestEnsureProfileForAuthUser_AutoprovisionaUnaVez(t *testing.T) {
	f := newUserFixture(t)
	identity := &entity.Identity{ID: "id-1", Email: "nuevo@hyla.cl", Name: "Nuevo"}

	first, err := f.uc.EnsureProfileForAuthUser(context.Background(), identity)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, entity.RoleRecluta, first.Role)
	assert.Equal(t, entity.UserPendiente, first.Status)
	assert.Equal(t, entity.DefaultTeamID, first.TeamID)

	second, err := f.uc.EnsureProfileForAuthUser(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, first.UID, second.UID)
	assert.Len(t, f.users.users, 1)
}

func TestEnsureBootstrapAdmin_EsIdempotente(t *testing.T) {
	f := newUserFixture(t)
	cfg := config.BootstrapConfig{
		AdminEmail: "admin@hyla.cl", AdminPassword: "secreta123",
		AdminName: "Admin Inicial", AdminCity: "Santiago",
	}

	f.uc.EnsureBootstrapAdmin(context.Background(), cfg)
	f.uc.EnsureBootstrapAdmin(context.Background(), cfg)

	assert.Len(t, f.identities.identities, 1)
	assert.Len(t, f.users.users, 1)
	for uid := range f.users.users {
		u := f.users.users[uid]
		assert.Equal(t, entity.RoleAdmin, u.Role)
		assert.Equal(t, entity.UserActivo, u.Status)
	}
}

func TestEnsureBootstrapAdmin_SinCredencialesNoHaceNada(t *testing.T) {
	f := newUserFixture(t)
	f.uc.EnsureBootstrapAdmin(context.Background(), config.BootstrapConfig{})
	assert.Empty(t, f.users.users)
}
