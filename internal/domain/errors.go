package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrLeadNotFound       = errors.New("lead no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Validaciones de leads e imágenes.
	ErrInvalidWhatsapp   = errors.New("whatsapp inválido: usa solo dígitos (9-15)")
	ErrInvalidLeadStatus = errors.New("estado de lead inválido")
	ErrInvalidDemoUser   = errors.New("usuario de demo inválido")
	ErrImageFormat       = errors.New("formato no permitido: usa jpg, jpeg, png o webp")
	ErrImageTooLarge     = errors.New("la imagen supera los 5MB")
)
