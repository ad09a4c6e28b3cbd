package dto

import (
	"time"

	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
)

// CrearUsuarioRequest alta de usuario (solo ADMIN).
type CrearUsuarioRequest struct {
	Usuario         string  `json:"usuario"`
	PrimerNombre    string  `json:"primerNombre"`
	SegundoNombre   string  `json:"segundoNombre"`
	PrimerApellido  string  `json:"primerApellido"`
	SegundoApellido string  `json:"segundoApellido"`
	Email           string  `json:"email"`
	Contrasena      string  `json:"contrasena"`
	Roles           []int64 `json:"roles"`
}

// ActualizarUsuarioRequest edición de usuario. Contrasena vacía = conservar
// la actual. Roles reemplaza el conjunto completo de asignaciones.
type ActualizarUsuarioRequest struct {
	PrimerNombre    string  `json:"primerNombre"`
	SegundoNombre   string  `json:"segundoNombre"`
	PrimerApellido  string  `json:"primerApellido"`
	SegundoApellido string  `json:"segundoApellido"`
	Email           string  `json:"email"`
	Activo          bool    `json:"activo"`
	Contrasena      string  `json:"contrasena"`
	Roles           []int64 `json:"roles"`
}

// UsuarioResponse proyección JSON de un usuario (nunca incluye la credencial).
type UsuarioResponse struct {
	ID              int64     `json:"idUsuario"`
	Usuario         string    `json:"usuario"`
	PrimerNombre    string    `json:"primerNombre"`
	SegundoNombre   string    `json:"segundoNombre,omitempty"`
	PrimerApellido  string    `json:"primerApellido"`
	SegundoApellido string    `json:"segundoApellido,omitempty"`
	Email           string    `json:"email"`
	Activo          bool      `json:"activo"`
	Roles           []string  `json:"roles"`
	CreadoEn        time.Time `json:"fechaCreacion"`
}

// RolResponse fila del catálogo de roles.
type RolResponse struct {
	ID     int64  `json:"idRol"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

// UsuarioADTO convierte la proyección de listado.
func UsuarioADTO(u *entity.UsuarioConRoles) UsuarioResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UsuarioResponse{
		ID:              u.ID,
		Usuario:         u.Usuario.Usuario,
		PrimerNombre:    u.PrimerNombre,
		SegundoNombre:   u.SegundoNombre,
		PrimerApellido:  u.PrimerApellido,
		SegundoApellido: u.SegundoApellido,
		Email:           u.Email,
		Activo:          u.Activo,
		Roles:           roles,
		CreadoEn:        u.CreadoEn,
	}
}

// UsuariosADTO convierte el listado.
func UsuariosADTO(us []entity.UsuarioConRoles) []UsuarioResponse {
	out := make([]UsuarioResponse, len(us))
	for i := range us {
		out[i] = UsuarioADTO(&us[i])
	}
	return out
}

// RolesADTO convierte el catálogo de roles.
func RolesADTO(rs []entity.RolCatalogo) []RolResponse {
	out := make([]RolResponse, len(rs))
	for i, r := range rs {
		out[i] = RolResponse{ID: r.ID, Nombre: r.Nombre, Activo: r.Activo}
	}
	return out
}
