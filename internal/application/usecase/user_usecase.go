package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hylatrack/leads-api/internal/application/audit"
	"github.com/hylatrack/leads-api/internal/application/dto"
	"github.com/hylatrack/leads-api/internal/domain"
	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/internal/domain/repository"
	"github.com/hylatrack/leads-api/pkg/config"
	"github.com/hylatrack/leads-api/pkg/logger"
)

// IdentityGateway es el contrato mínimo hacia el proveedor de identidad que
// necesita el directorio de usuarios. Lo implementa *auth.AuthUseCase.
type IdentityGateway interface {
	CreateIdentity(ctx context.Context, email, password, name string) (*entity.Identity, error)
	FindIdentityByEmail(ctx context.Context, email string) (*entity.Identity, error)
}

// UserUseCase directorio de usuarios: listado y mutaciones con alcance por rol/equipo.
type UserUseCase struct {
	users      repository.UserRepository
	identities IdentityGateway
	auditor    *audit.Recorder
	log        *logger.Logger
}

// NewUserUseCase construye el directorio de usuarios.
func NewUserUseCase(users repository.UserRepository, identities IdentityGateway, auditor *audit.Recorder, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, identities: identities, auditor: auditor, log: log}
}

// List devuelve los usuarios visibles para el actor: JEFE ve solo su equipo, el
// resto ve todos. El guard de ruta restringe el acceso a roles elevados; esta
// función no lo vuelve a verificar.
func (uc *UserUseCase) List(ctx context.Context, actor *entity.User) ([]*entity.User, error) {
	if actor.Role == entity.RoleJefe {
		return uc.users.ListByTeam(ctx, actor.TeamID)
	}
	return uc.users.ListAll(ctx)
}

// GetProfile obtiene un perfil por UID; nil si no existe.
func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	return uc.users.GetByUID(ctx, uid)
}

// Create da de alta identidad y perfil de un usuario nuevo.
//
// Reglas:
//   - Un JEFE solo crea VENDEDOR o RECLUTA (cualquier otro rol se fuerza a RECLUTA)
//     y el equipo/jefe quedan forzados a los suyos.
//   - Un manager_user_id que no sea un identificador bien formado se limpia a nil.
//   - Si ya existe identidad Y perfil para el email, se señala ErrEmailAlreadyExists.
//     Identidad sin perfil es un alta interrumpida: se reutiliza y solo se crea el perfil.
func (uc *UserUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateUserRequest) (string, error) {
	role := entity.Role(in.Role)
	status := entity.UserStatus(in.Status)
	teamID := in.TeamID
	managerID := in.ManagerUserID

	if actor.Role == entity.RoleJefe {
		if role != entity.RoleVendedor && role != entity.RoleRecluta {
			role = entity.RoleRecluta
		}
		teamID = actor.TeamID
		managerID = actor.UID
	}
	if !role.Valid() {
		return "", domain.ErrInvalidInput
	}
	if !status.Valid() {
		return "", domain.ErrInvalidInput
	}
	if teamID == "" {
		teamID = entity.DefaultTeamID
	}
	manager := normalizeManagerID(managerID)

	identity, err := uc.identities.FindIdentityByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if identity != nil {
		existing, err := uc.users.GetByUID(ctx, identity.ID)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return "", domain.ErrEmailAlreadyExists
		}
		// Identidad huérfana: se adjunta un perfil nuevo en lugar de duplicarla.
	} else {
		identity, err = uc.identities.CreateIdentity(ctx, in.Email, in.Password, in.Name)
		if err != nil {
			return "", err
		}
	}

	now := time.Now().UTC()
	user := &entity.User{
		UID:           identity.ID,
		Name:          in.Name,
		Email:         in.Email,
		Role:          role,
		Status:        status,
		City:          in.City,
		TeamID:        teamID,
		ManagerUserID: manager,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return "", err
	}
	uc.auditor.Record(ctx, actor, entity.ActionCreate, entity.EntityUser, user.UID, teamID,
		nil, audit.UserSnapshot(user))
	return user.UID, nil
}

// Update aplica cambios parciales a un perfil y audita snapshots completos
// antes/después. Si el cambio incluye status, la acción es USER_STATUS_CHANGE.
func (uc *UserUseCase) Update(ctx context.Context, actor *entity.User, uid string, in dto.UpdateUserRequest) (*entity.User, error) {
	before, err := uc.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, domain.ErrUserNotFound
	}

	updated := *before
	if in.Name != nil {
		updated.Name = *in.Name
	}
	if in.City != nil {
		updated.City = *in.City
	}
	if in.Role != nil {
		role := entity.Role(*in.Role)
		if !role.Valid() {
			return nil, domain.ErrInvalidInput
		}
		updated.Role = role
	}
	if in.Status != nil {
		status := entity.UserStatus(*in.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidInput
		}
		updated.Status = status
	}
	if in.TeamID != nil {
		updated.TeamID = *in.TeamID
		if updated.TeamID == "" {
			updated.TeamID = entity.DefaultTeamID
		}
	}
	if in.ManagerUserID != nil {
		updated.ManagerUserID = normalizeManagerID(*in.ManagerUserID)
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := uc.users.Update(ctx, &updated); err != nil {
		return nil, err
	}

	action := entity.ActionUpdate
	if in.Status != nil {
		action = entity.ActionUserStatusChange
	}
	uc.auditor.Record(ctx, actor, action, entity.EntityUser, uid, updated.TeamID,
		audit.UserSnapshot(before), audit.UserSnapshot(&updated))
	return &updated, nil
}

// EnsureProfileForAuthUser autoprovisiona un perfil RECLUTA/PENDIENTE en el equipo
// por defecto la primera vez que una identidad se autentica sin perfil.
// Devuelve nil (sin error) si la creación falla.
func (uc *UserUseCase) EnsureProfileForAuthUser(ctx context.Context, identity *entity.Identity) (*entity.User, error) {
	if identity == nil || identity.ID == "" {
		return nil, nil
	}
	existing, err := uc.users.GetByUID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	name := identity.Name
	if name == "" {
		name = identity.Email
	}
	now := time.Now().UTC()
	user := &entity.User{
		UID:       identity.ID,
		Name:      name,
		Email:     identity.Email,
		Role:      entity.RoleRecluta,
		Status:    entity.UserPendiente,
		TeamID:    entity.DefaultTeamID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		uc.log.Warn().Err(err).Str("uid", identity.ID).Msg("no se pudo autoprovisionar el perfil")
		return nil, nil
	}
	return user, nil
}

// EnsureBootstrapAdmin crea, una sola vez, el administrador inicial configurado.
// Es idempotente y tolera errores del proveedor de identidad sin abortar el
// arranque del proceso: cualquier fallo se loguea y se omite.
func (uc *UserUseCase) EnsureBootstrapAdmin(ctx context.Context, cfg config.BootstrapConfig) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" || cfg.AdminName == "" {
		return
	}
	identity, err := uc.identities.FindIdentityByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		uc.log.Warn().Err(err).Msg("bootstrap admin: no se pudo consultar la identidad")
		return
	}
	if identity == nil {
		identity, err = uc.identities.CreateIdentity(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
		if err != nil {
			uc.log.Warn().Err(err).Msg("bootstrap admin: no se pudo crear la identidad")
			return
		}
	}
	existing, err := uc.users.GetByUID(ctx, identity.ID)
	if err != nil {
		uc.log.Warn().Err(err).Msg("bootstrap admin: no se pudo consultar el perfil")
		return
	}
	if existing != nil {
		return
	}
	now := time.Now().UTC()
	user := &entity.User{
		UID:       identity.ID,
		Name:      cfg.AdminName,
		Email:     cfg.AdminEmail,
		Role:      entity.RoleAdmin,
		Status:    entity.UserActivo,
		City:      cfg.AdminCity,
		TeamID:    entity.DefaultTeamID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		uc.log.Warn().Err(err).Msg("bootstrap admin: no se pudo crear el perfil")
		return
	}
	uc.log.Info().Str("email", cfg.AdminEmail).Msg("bootstrap admin creado")
}

// normalizeManagerID limpia un manager_user_id mal formado (no UUID) a nil.
func normalizeManagerID(id string) *string {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	return &id
}

// ToResponses convierte un listado de entidades a DTOs de salida.
func ToResponses(users []*entity.User) []*dto.UserResponse {
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out
}
