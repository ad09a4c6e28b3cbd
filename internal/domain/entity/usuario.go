package entity

import (
	"strings"
	"time"
	"unicode"

	"github.com/dicri-gt/sii-dicri-api/internal/domain"
)

// Usuario cuenta del sistema. Contrasena guarda el hash bcrypt; para cuentas
// migradas del sistema anterior puede contener todavía el valor plano.
type Usuario struct {
	ID              int64
	Usuario         string
	PrimerNombre    string
	SegundoNombre   string
	PrimerApellido  string
	SegundoApellido string
	Email           string
	Contrasena      string
	Activo          bool
	CreadoEn        time.Time
	ModificadoEn    *time.Time
}

// NombreCompleto es el nombre de despliegue que viaja en el token.
func (u *Usuario) NombreCompleto() string {
	return strings.TrimSpace(u.PrimerNombre + " " + u.PrimerApellido)
}

// RolCatalogo fila del catálogo de roles asignables.
type RolCatalogo struct {
	ID     int64
	Nombre string
	Activo bool
}

// UsuarioConRoles proyección para el listado de administración.
type UsuarioConRoles struct {
	Usuario
	Roles []string
}

// ValidarContrasena aplica la política mínima de complejidad: al menos seis
// caracteres, una letra y un dígito. Las letras acentuadas y la eñe cuentan
// como letra (unicode.IsLetter).
func ValidarContrasena(contrasena string) error {
	if len([]rune(contrasena)) < 6 {
		return domain.ErrContrasenaCorta
	}
	var tieneLetra, tieneDigito bool
	for _, r := range contrasena {
		switch {
		case unicode.IsLetter(r):
			tieneLetra = true
		case unicode.IsDigit(r):
			tieneDigito = true
		}
	}
	if !tieneLetra || !tieneDigito {
		return domain.ErrContrasenaDebil
	}
	return nil
}
