package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
)

var _ repository.UsuarioRolRepository = (*UsuarioRolRepo)(nil)

// UsuarioRolRepo adaptador de persistencia para asignaciones usuario-rol.
type UsuarioRolRepo struct {
	db *DB
	q  querier
}

// NewUsuarioRolRepository construye el adaptador sobre el handle de conexión.
func NewUsuarioRolRepository(db *DB) *UsuarioRolRepo {
	return &UsuarioRolRepo{db: db}
}

func newUsuarioRolRepositoryTx(tx pgx.Tx) *UsuarioRolRepo {
	return &UsuarioRolRepo{q: tx}
}

func (r *UsuarioRolRepo) conn(ctx context.Context) (querier, error) {
	if r.q != nil {
		return r.q, nil
	}
	return r.db.Pool(ctx)
}

// ListarPorUsuario devuelve los roles asignados al usuario.
func (r *UsuarioRolRepo) ListarPorUsuario(ctx context.Context, idUsuario int64) ([]entity.RolCatalogo, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT r.id_rol, r.nombre, r.activo
		FROM usuario_roles ur
		JOIN roles r ON r.id_rol = ur.id_rol
		WHERE ur.id_usuario = $1
		ORDER BY r.nombre`
	return listarRoles(ctx, q, query, idUsuario)
}

// ListarRoles devuelve el catálogo completo de roles.
func (r *UsuarioRolRepo) ListarRoles(ctx context.Context) ([]entity.RolCatalogo, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT id_rol, nombre, activo FROM roles ORDER BY nombre`
	return listarRoles(ctx, q, query)
}

func listarRoles(ctx context.Context, q querier, query string, args ...any) ([]entity.RolCatalogo, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar roles: %w", err)
	}
	defer rows.Close()

	var list []entity.RolCatalogo
	for rows.Next() {
		var rc entity.RolCatalogo
		if err := rows.Scan(&rc.ID, &rc.Nombre, &rc.Activo); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		list = append(list, rc)
	}
	return list, rows.Err()
}

// EliminarPorUsuario borra todas las asignaciones del usuario (paso previo
// al reemplazo completo del conjunto).
func (r *UsuarioRolRepo) EliminarPorUsuario(ctx context.Context, idUsuario, idUsuarioAccion int64) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx, `DELETE FROM usuario_roles WHERE id_usuario = $1`, idUsuario); err != nil {
		return fmt.Errorf("eliminar roles de usuario: %w", err)
	}
	return nil
}

// AsignarLote inserta todas las asignaciones en una sola sentencia (unnest
// sobre el arreglo de ids) dentro de la transacción en curso.
func (r *UsuarioRolRepo) AsignarLote(ctx context.Context, idUsuario int64, idsRol []int64, idUsuarioAccion int64) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO usuario_roles (id_usuario, id_rol, asignado_por)
		SELECT $1, unnest($2::bigint[]), $3`
	tag, err := q.Exec(ctx, query, idUsuario, idsRol, idUsuarioAccion)
	if err != nil {
		return fmt.Errorf("asignar roles: %w", err)
	}
	if tag.RowsAffected() != int64(len(idsRol)) {
		return fmt.Errorf("asignar roles: se esperaban %d asignaciones, se insertaron %d", len(idsRol), tag.RowsAffected())
	}
	return nil
}
