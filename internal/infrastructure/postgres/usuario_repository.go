package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dicri-gt/sii-dicri-api/internal/domain"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo adaptador de persistencia para usuarios sobre PostgreSQL.
type UsuarioRepo struct {
	db *DB
	q  querier
}

// NewUsuarioRepository construye el adaptador sobre el handle de conexión.
func NewUsuarioRepository(db *DB) *UsuarioRepo {
	return &UsuarioRepo{db: db}
}

func newUsuarioRepositoryTx(tx pgx.Tx) *UsuarioRepo {
	return &UsuarioRepo{q: tx}
}

func (r *UsuarioRepo) conn(ctx context.Context) (querier, error) {
	if r.q != nil {
		return r.q, nil
	}
	return r.db.Pool(ctx)
}

const columnasUsuario = `
	id_usuario, usuario, primer_nombre, COALESCE(segundo_nombre, ''),
	primer_apellido, COALESCE(segundo_apellido, ''), email, contrasena,
	activo, creado_en, modificado_en`

// ObtenerPorUsuario devuelve el registro por nombre de usuario, o nil si no
// existe. Prefiere la cuenta activa si hubiera homónimas dadas de baja.
func (r *UsuarioRepo) ObtenerPorUsuario(ctx context.Context, usuario string) (*entity.Usuario, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT` + columnasUsuario + `
		FROM usuarios WHERE lower(usuario) = lower($1)
		ORDER BY activo DESC LIMIT 1`
	return scanUsuario(q.QueryRow(ctx, query, usuario))
}

// ObtenerPorID devuelve el usuario por id, o nil si no existe.
func (r *UsuarioRepo) ObtenerPorID(ctx context.Context, id int64) (*entity.Usuario, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT` + columnasUsuario + ` FROM usuarios WHERE id_usuario = $1`
	return scanUsuario(q.QueryRow(ctx, query, id))
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.Usuario, &u.PrimerNombre, &u.SegundoNombre,
		&u.PrimerApellido, &u.SegundoApellido, &u.Email, &u.Contrasena,
		&u.Activo, &u.CreadoEn, &u.ModificadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	return &u, nil
}

// Listar devuelve usuarios con sus roles agregados. La búsqueda de texto es
// acento-insensible (extensión unaccent).
func (r *UsuarioRepo) Listar(ctx context.Context, search string, soloActivos *bool) ([]entity.UsuarioConRoles, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT u.id_usuario, u.usuario, u.primer_nombre, COALESCE(u.segundo_nombre, ''),
		       u.primer_apellido, COALESCE(u.segundo_apellido, ''), u.email,
		       u.activo, u.creado_en, u.modificado_en,
		       COALESCE(array_agg(r.nombre ORDER BY r.nombre)
		                FILTER (WHERE r.id_rol IS NOT NULL), '{}') AS roles
		FROM usuarios u
		LEFT JOIN usuario_roles ur ON ur.id_usuario = u.id_usuario
		LEFT JOIN roles r ON r.id_rol = ur.id_rol
		WHERE ($1 = '' OR unaccent(u.usuario || ' ' || u.primer_nombre || ' ' ||
		       u.primer_apellido || ' ' || u.email) ILIKE unaccent('%' || $1 || '%'))
		  AND ($2::boolean IS NULL OR u.activo = $2)
		GROUP BY u.id_usuario
		ORDER BY u.usuario`
	rows, err := q.Query(ctx, query, search, soloActivos)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	defer rows.Close()

	var list []entity.UsuarioConRoles
	for rows.Next() {
		var u entity.UsuarioConRoles
		if err := rows.Scan(
			&u.ID, &u.Usuario.Usuario, &u.PrimerNombre, &u.SegundoNombre,
			&u.PrimerApellido, &u.SegundoApellido, &u.Email,
			&u.Activo, &u.CreadoEn, &u.ModificadoEn, &u.Roles,
		); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Crear inserta el usuario. La violación del índice único parcial (usuario
// entre cuentas activas) se traduce al error de dominio con mensaje estable.
func (r *UsuarioRepo) Crear(ctx context.Context, u *entity.Usuario, idUsuarioAccion int64) (int64, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	query := `
		INSERT INTO usuarios
			(usuario, primer_nombre, segundo_nombre, primer_apellido,
			 segundo_apellido, email, contrasena, activo, modificado_por)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7, TRUE, $8)
		RETURNING id_usuario`
	var id int64
	err = q.QueryRow(ctx, query,
		u.Usuario, u.PrimerNombre, u.SegundoNombre, u.PrimerApellido,
		u.SegundoApellido, u.Email, u.Contrasena, idUsuarioAccion,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrUsuarioDuplicado
		}
		return 0, fmt.Errorf("insertar usuario: %w", err)
	}
	return id, nil
}

// Actualizar escribe los datos del usuario; el hash de credencial solo se
// reemplaza cuando nuevaContrasena no es nil.
func (r *UsuarioRepo) Actualizar(ctx context.Context, u *entity.Usuario, nuevaContrasena *string, idUsuarioAccion int64) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE usuarios SET
			primer_nombre = $2, segundo_nombre = NULLIF($3, ''),
			primer_apellido = $4, segundo_apellido = NULLIF($5, ''),
			email = $6, activo = $7,
			contrasena = COALESCE($8, contrasena),
			modificado_por = $9, modificado_en = now()
		WHERE id_usuario = $1`
	tag, err := q.Exec(ctx, query,
		u.ID, u.PrimerNombre, u.SegundoNombre, u.PrimerApellido,
		u.SegundoApellido, u.Email, u.Activo, nuevaContrasena, idUsuarioAccion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsuarioDuplicado
		}
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUsuarioNoEncontrado
	}
	return nil
}
