package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hylatrack/leads-api/internal/application/dto"
	"github.com/hylatrack/leads-api/internal/domain/entity"
)

// LocalActor key del perfil autenticado en c.Locals.
const LocalActor = "actor"

// TokenVerifier es el contrato mínimo del gateway de identidad que necesita el
// middleware. Lo implementa *auth.AuthUseCase.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entity.Identity, error)
}

// ProfileResolver resuelve el perfil del usuario autenticado, autoprovisionando
// en la primera autenticación. Lo implementa *usecase.UserUseCase.
type ProfileResolver interface {
	GetProfile(ctx context.Context, uid string) (*entity.User, error)
	EnsureProfileForAuthUser(ctx context.Context, identity *entity.Identity) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token, resuelve el perfil del actor y lo deja
// en c.Locals. Sin token válido responde 401; cuentas BLOQUEADO o PAUSADO
// responden 403 con un código propio.
func AuthMiddleware(verifier TokenVerifier, profiles ProfileResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}

		identity, err := verifier.VerifyToken(c.Context(), tokenString)
		if err != nil || identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		actor, err := profiles.GetProfile(c.Context(), identity.ID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no se pudo resolver el perfil"})
		}
		if actor == nil {
			actor, _ = profiles.EnsureProfileForAuthUser(c.Context(), identity)
			if actor == nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no se encontró el perfil de usuario"})
			}
		}
		if actor.Status == entity.UserBloqueado || actor.Status == entity.UserPausado {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ACCOUNT_DISABLED", Message: "tu cuenta está bloqueada o pausada, contacta al administrador"})
		}

		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe usarse DESPUÉS de
// AuthMiddleware. Sin actor responde 401; con rol insuficiente responde 403,
// distinguible de la falta de autenticación.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		for _, role := range roles {
			if actor.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes permisos para acceder"})
	}
}

// BlockPendingWrites impide mutaciones a cuentas PENDIENTE: solo lectura hasta
// que un administrador las active.
func BlockPendingWrites() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor != nil && actor.Status == entity.UserPendiente && c.Method() != fiber.MethodGet {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PENDING_ACCOUNT", Message: "cuenta pendiente de activación, no puedes realizar cambios"})
		}
		return c.Next()
	}
}

// GetActor devuelve el perfil autenticado del contexto (después del middleware de auth).
func GetActor(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalActor)
	if v == nil {
		return nil
	}
	actor, _ := v.(*entity.User)
	return actor
}
