package repository

import (
	"context"

	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
)

// UsuarioRepository puerto de persistencia para usuarios (DIP).
type UsuarioRepository interface {
	// ObtenerPorUsuario devuelve el registro por nombre de usuario, o nil si no existe.
	ObtenerPorUsuario(ctx context.Context, usuario string) (*entity.Usuario, error)
	ObtenerPorID(ctx context.Context, id int64) (*entity.Usuario, error)
	// Listar filtra por texto libre (acento-insensible) y por estado.
	// soloActivos: nil = todos, true = activos, false = inactivos.
	Listar(ctx context.Context, search string, soloActivos *bool) ([]entity.UsuarioConRoles, error)
	// Crear inserta el usuario y devuelve su id. Traduce la violación de
	// unicidad del nombre de usuario a domain.ErrUsuarioDuplicado.
	Crear(ctx context.Context, u *entity.Usuario, idUsuarioAccion int64) (int64, error)
	// Actualizar escribe los datos del usuario; si nuevaContrasena no es nil
	// reemplaza también el hash almacenado.
	Actualizar(ctx context.Context, u *entity.Usuario, nuevaContrasena *string, idUsuarioAccion int64) error
}

// UsuarioRolRepository puerto para las asignaciones usuario-rol.
type UsuarioRolRepository interface {
	// ListarPorUsuario devuelve los roles asignados (incluye inactivos; el
	// emisor de sesión filtra por Activo).
	ListarPorUsuario(ctx context.Context, idUsuario int64) ([]entity.RolCatalogo, error)
	ListarRoles(ctx context.Context) ([]entity.RolCatalogo, error)
	// EliminarPorUsuario borra todas las asignaciones del usuario.
	EliminarPorUsuario(ctx context.Context, idUsuario, idUsuarioAccion int64) error
	// AsignarLote inserta el conjunto completo de asignaciones en una sola
	// sentencia, dentro de la transacción en curso.
	AsignarLote(ctx context.Context, idUsuario int64, idsRol []int64, idUsuarioAccion int64) error
}
