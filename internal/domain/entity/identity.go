package entity

import "time"

// Identity cuenta en el proveedor de identidad (credenciales, no perfil).
// Puede existir sin perfil de User asociado; en ese caso el alta de usuario
// reutiliza la identidad y solo crea el perfil.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca en texto plano
	Name         string // metadato de display; puede estar vacío
	CreatedAt    time.Time
}
