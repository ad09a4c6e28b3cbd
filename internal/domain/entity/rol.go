package entity

import "strings"

// Rol identifica un rol del sistema como valor tipado. Trabajar con un
// conjunto cerrado en lugar de strings sueltos elimina los errores de
// autorización por diferencias de mayúsculas o espacios.
type Rol string

// Roles conocidos. El conjunto es extensible: los roles nuevos creados en la
// tabla de roles circulan igual como Rol tras NormalizarRol.
const (
	RolTecnico     Rol = "TECNICO"
	RolCoordinador Rol = "COORDINADOR"
	RolAdmin       Rol = "ADMIN"
)

// NormalizarRol canoniza un nombre de rol: sin espacios y en mayúsculas.
// La normalización ocurre al emitir la sesión, nunca al verificar permisos.
func NormalizarRol(s string) Rol {
	return Rol(strings.ToUpper(strings.TrimSpace(s)))
}

// Roles es el conjunto de roles de un usuario autenticado.
type Roles []Rol

// RolesDesdeStrings convierte la lista de claims del token en roles tipados,
// descartando entradas vacías.
func RolesDesdeStrings(ss []string) Roles {
	roles := make(Roles, 0, len(ss))
	for _, s := range ss {
		if r := NormalizarRol(s); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// Strings devuelve los roles como []string para serializar en claims JWT.
func (rs Roles) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// Contiene indica si el conjunto incluye el rol dado.
func (rs Roles) Contiene(r Rol) bool {
	for _, v := range rs {
		if v == r {
			return true
		}
	}
	return false
}

// AlgunoDe indica si hay intersección con los roles permitidos.
// Los conjuntos ya vienen normalizados, la comparación es igualdad directa.
func (rs Roles) AlgunoDe(permitidos ...Rol) bool {
	for _, p := range permitidos {
		if rs.Contiene(p) {
			return true
		}
	}
	return false
}
