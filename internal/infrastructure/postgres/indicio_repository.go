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

var _ repository.IndicioRepository = (*IndicioRepo)(nil)

// IndicioRepo adaptador de persistencia para indicios. Las escrituras van
// condicionadas al estado editable del expediente padre en la misma
// sentencia (defensa en profundidad).
type IndicioRepo struct {
	db *DB
	q  querier
}

// NewIndicioRepository construye el adaptador sobre el handle de conexión.
func NewIndicioRepository(db *DB) *IndicioRepo {
	return &IndicioRepo{db: db}
}

func newIndicioRepositoryTx(tx pgx.Tx) *IndicioRepo {
	return &IndicioRepo{q: tx}
}

func (r *IndicioRepo) conn(ctx context.Context) (querier, error) {
	if r.q != nil {
		return r.q, nil
	}
	return r.db.Pool(ctx)
}

const columnasIndicio = `
	id_indicio, id_expediente, nombre, COALESCE(descripcion, ''),
	COALESCE(color, ''), COALESCE(tamano, ''), peso, COALESCE(ubicacion, ''),
	eliminado, creado_por, creado_en, modificado_por, modificado_en`

// ListarPorExpediente devuelve los indicios no eliminados del expediente.
func (r *IndicioRepo) ListarPorExpediente(ctx context.Context, idExpediente int64) ([]entity.Indicio, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT` + columnasIndicio + `
		FROM indicios
		WHERE id_expediente = $1 AND NOT eliminado
		ORDER BY id_indicio`
	rows, err := q.Query(ctx, query, idExpediente)
	if err != nil {
		return nil, fmt.Errorf("listar indicios: %w", err)
	}
	defer rows.Close()

	var list []entity.Indicio
	for rows.Next() {
		var i entity.Indicio
		if err := rows.Scan(
			&i.ID, &i.IDExpediente, &i.Nombre, &i.Descripcion,
			&i.Color, &i.Tamano, &i.Peso, &i.Ubicacion,
			&i.Eliminado, &i.CreadoPor, &i.CreadoEn, &i.ModificadoPor, &i.ModificadoEn,
		); err != nil {
			return nil, fmt.Errorf("scan indicio: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// ObtenerPorID devuelve el indicio por id, o nil si no existe.
func (r *IndicioRepo) ObtenerPorID(ctx context.Context, id int64) (*entity.Indicio, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT` + columnasIndicio + ` FROM indicios WHERE id_indicio = $1`
	var i entity.Indicio
	err = q.QueryRow(ctx, query, id).Scan(
		&i.ID, &i.IDExpediente, &i.Nombre, &i.Descripcion,
		&i.Color, &i.Tamano, &i.Peso, &i.Ubicacion,
		&i.Eliminado, &i.CreadoPor, &i.CreadoEn, &i.ModificadoPor, &i.ModificadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener indicio: %w", err)
	}
	return &i, nil
}

// Crear inserta el indicio solo si el expediente padre existe, no está
// eliminado y sigue en estado editable.
func (r *IndicioRepo) Crear(ctx context.Context, i *entity.Indicio, idUsuarioAccion int64) (int64, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	query := `
		INSERT INTO indicios (id_expediente, nombre, descripcion, color, tamano, peso, ubicacion, creado_por)
		SELECT e.id_expediente, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, NULLIF($7, ''), $8
		FROM expedientes e
		WHERE e.id_expediente = $1
		  AND NOT e.eliminado
		  AND e.estado IN ('BORRADOR', 'RECHAZADO')
		RETURNING id_indicio`
	var id int64
	err = q.QueryRow(ctx, query,
		i.IDExpediente, i.Nombre, i.Descripcion, i.Color, i.Tamano, i.Peso, i.Ubicacion, idUsuarioAccion,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, r.motivoRechazoPadre(ctx, i.IDExpediente)
		}
		return 0, fmt.Errorf("insertar indicio: %w", err)
	}
	return id, nil
}

// Actualizar edita el indicio condicionado al estado editable del padre.
func (r *IndicioRepo) Actualizar(ctx context.Context, i *entity.Indicio, idUsuarioAccion int64) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE indicios i SET
			nombre = $2, descripcion = NULLIF($3, ''), color = NULLIF($4, ''),
			tamano = NULLIF($5, ''), peso = $6, ubicacion = NULLIF($7, ''),
			modificado_por = $8, modificado_en = now()
		FROM expedientes e
		WHERE i.id_indicio = $1
		  AND NOT i.eliminado
		  AND e.id_expediente = i.id_expediente
		  AND NOT e.eliminado
		  AND e.estado IN ('BORRADOR', 'RECHAZADO')`
	tag, err := q.Exec(ctx, query,
		i.ID, i.Nombre, i.Descripcion, i.Color, i.Tamano, i.Peso, i.Ubicacion, idUsuarioAccion,
	)
	if err != nil {
		return fmt.Errorf("actualizar indicio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.motivoRechazoIndicio(ctx, i.ID)
	}
	return nil
}

// EliminarLogico marca el indicio como eliminado, con el mismo candado del padre.
func (r *IndicioRepo) EliminarLogico(ctx context.Context, id int64, idUsuarioAccion int64) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE indicios i SET
			eliminado = TRUE, modificado_por = $2, modificado_en = now()
		FROM expedientes e
		WHERE i.id_indicio = $1
		  AND NOT i.eliminado
		  AND e.id_expediente = i.id_expediente
		  AND NOT e.eliminado
		  AND e.estado IN ('BORRADOR', 'RECHAZADO')`
	tag, err := q.Exec(ctx, query, id, idUsuarioAccion)
	if err != nil {
		return fmt.Errorf("eliminar indicio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.motivoRechazoIndicio(ctx, id)
	}
	return nil
}

// EliminarPorExpediente cascada del borrado lógico del padre: marca
// eliminados todos los indicios vigentes del expediente.
func (r *IndicioRepo) EliminarPorExpediente(ctx context.Context, idExpediente int64, idUsuarioAccion int64) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE indicios SET
			eliminado = TRUE, modificado_por = $2, modificado_en = now()
		WHERE id_expediente = $1 AND NOT eliminado`
	if _, err := q.Exec(ctx, query, idExpediente, idUsuarioAccion); err != nil {
		return fmt.Errorf("eliminar indicios del expediente: %w", err)
	}
	return nil
}

// motivoRechazoPadre distingue por qué el insert no encontró expediente.
func (r *IndicioRepo) motivoRechazoPadre(ctx context.Context, idExpediente int64) error {
	var estado string
	var eliminado bool
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}
	err = q.QueryRow(ctx,
		`SELECT estado, eliminado FROM expedientes WHERE id_expediente = $1`, idExpediente,
	).Scan(&estado, &eliminado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrExpedienteNoEncontrado
		}
		return fmt.Errorf("verificar expediente: %w", err)
	}
	if eliminado {
		return domain.ErrExpedienteNoEncontrado
	}
	return domain.ErrExpedienteNoEditable
}

// motivoRechazoIndicio distingue indicio inexistente de padre no editable.
func (r *IndicioRepo) motivoRechazoIndicio(ctx context.Context, id int64) error {
	actual, err := r.ObtenerPorID(ctx, id)
	if err != nil {
		return err
	}
	if actual == nil || actual.Eliminado {
		return domain.ErrIndicioNoEncontrado
	}
	return r.motivoRechazoPadre(ctx, actual.IDExpediente)
}
