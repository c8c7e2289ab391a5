package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hylatrack/leads-api/internal/application/dto"
	"github.com/hylatrack/leads-api/internal/domain"
	"github.com/hylatrack/leads-api/internal/domain/entity"
	"github.com/hylatrack/leads-api/internal/domain/repository"
	"github.com/hylatrack/leads-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	ExpMinutes        int
	RefreshExpMinutes int
	Issuer            string
}

// ProfileDirectory es el contrato mínimo que necesita el gateway para resolver
// el perfil del usuario autenticado. Lo implementa *usecase.UserUseCase.
type ProfileDirectory interface {
	GetProfile(ctx context.Context, uid string) (*entity.User, error)
	EnsureProfileForAuthUser(ctx context.Context, identity *entity.Identity) (*entity.User, error)
}

// AuthUseCase gateway de identidad: login, verificación de tokens y alta de identidades.
type AuthUseCase struct {
	identities repository.IdentityRepository
	profiles   ProfileDirectory
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el gateway de identidad.
func NewAuthUseCase(identities repository.IdentityRepository, profiles ProfileDirectory, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{identities: identities, profiles: profiles, jwtCfg: jwtCfg}
}

// SetProfileDirectory conecta el directorio de perfiles. El gateway y el
// directorio se necesitan mutuamente, así que uno de los dos se conecta
// después de construir ambos.
func (uc *AuthUseCase) SetProfileDirectory(profiles ProfileDirectory) {
	uc.profiles = profiles
}

// Login verifica email/password, resuelve (o autoprovisiona) el perfil y genera el
// par de tokens. Cualquier fallo de verificación se reporta como credenciales
// inválidas, sin filtrar detalle. Cuentas BLOQUEADO/PAUSADO devuelven ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	identity, err := uc.identities.GetByEmail(ctx, in.Email)
	if err != nil || identity == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	profile, err := uc.profiles.GetProfile(ctx, identity.ID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if profile == nil {
		// Primera autenticación sin perfil: autoprovisionar RECLUTA/PENDIENTE.
		profile, err = uc.profiles.EnsureProfileForAuthUser(ctx, identity)
		if err != nil || profile == nil {
			return nil, domain.ErrUnauthorized
		}
	}
	if profile.Status == entity.UserBloqueado || profile.Status == entity.UserPausado {
		return nil, domain.ErrForbidden
	}
	access, refresh, err := uc.generatePair(identity)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *dto.ToUserResponse(profile),
	}, nil
}

// VerifyToken valida un access token y devuelve la identidad, o nil si el token
// es inválido, expiró o la identidad ya no existe.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	identityID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, nil
	}
	identity, err := uc.identities.GetByID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return identity, nil
}

// Refresh valida el refresh token y emite un par nuevo.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	identity, err := uc.VerifyToken(ctx, refreshToken)
	if err != nil || identity == nil {
		return nil, domain.ErrUnauthorized
	}
	access, refresh, err := uc.generatePair(identity)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

// CreateIdentity da de alta una identidad preconfirmada con el hash bcrypt del password.
func (uc *AuthUseCase) CreateIdentity(ctx context.Context, email, password, name string) (*entity.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	identity := &entity.Identity{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.identities.Create(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// FindIdentityByEmail busca una identidad por email; nil si no existe.
func (uc *AuthUseCase) FindIdentityByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	return uc.identities.GetByEmail(ctx, email)
}

func (uc *AuthUseCase) generatePair(identity *entity.Identity) (access, refresh string, err error) {
	access, err = jwt.Generate(uc.jwtCfg.Secret, identity.ID, identity.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", "", err
	}
	refresh, err = jwt.Generate(uc.jwtCfg.Secret, identity.ID, identity.Email, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
