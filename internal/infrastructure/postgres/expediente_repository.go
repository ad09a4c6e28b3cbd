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

var _ repository.ExpedienteRepository = (*ExpedienteRepo)(nil)

// ExpedienteRepo adaptador de persistencia para expedientes.
//
// Las escrituras condicionan el UPDATE al estado vigente de la fila, de modo
// que la base rechaza por sí misma ediciones fuera de la ventana BORRADOR /
// RECHAZADO y transiciones cuyo estado de partida ya cambió, aunque la capa
// de aplicación no lo hubiera verificado.
type ExpedienteRepo struct {
	db *DB
	q  querier
}

// NewExpedienteRepository construye el adaptador sobre el handle de conexión.
func NewExpedienteRepository(db *DB) *ExpedienteRepo {
	return &ExpedienteRepo{db: db}
}

func newExpedienteRepositoryTx(tx pgx.Tx) *ExpedienteRepo {
	return &ExpedienteRepo{q: tx}
}

func (r *ExpedienteRepo) conn(ctx context.Context) (querier, error) {
	if r.q != nil {
		return r.q, nil
	}
	return r.db.Pool(ctx)
}

const columnasExpediente = `
	id_expediente, numero_expediente, titulo, fiscalia, tipo_caso,
	fecha_hecho, estado, justificacion, eliminado,
	creado_por, creado_en, modificado_por, modificado_en`

// Listar devuelve expedientes no eliminados, más recientes primero.
func (r *ExpedienteRepo) Listar(ctx context.Context, filtro entity.FiltroExpedientes) ([]entity.Expediente, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT` + columnasExpediente + `
		FROM expedientes
		WHERE NOT eliminado
		  AND ($1::varchar IS NULL OR estado = $1)
		  AND ($2::date IS NULL OR fecha_hecho >= $2)
		  AND ($3::date IS NULL OR fecha_hecho <= $3)
		ORDER BY creado_en DESC`
	var estado *string
	if filtro.Estado != nil {
		s := string(*filtro.Estado)
		estado = &s
	}
	rows, err := q.Query(ctx, query, estado, filtro.FechaInicio, filtro.FechaFin)
	if err != nil {
		return nil, fmt.Errorf("listar expedientes: %w", err)
	}
	defer rows.Close()

	var list []entity.Expediente
	for rows.Next() {
		e, err := scanExpediente(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// ObtenerPorID devuelve el expediente por id, o nil si no existe.
func (r *ExpedienteRepo) ObtenerPorID(ctx context.Context, id int64) (*entity.Expediente, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT` + columnasExpediente + ` FROM expedientes WHERE id_expediente = $1`
	e, err := scanExpediente(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanExpediente(row scannable) (*entity.Expediente, error) {
	var e entity.Expediente
	var estado string
	err := row.Scan(
		&e.ID, &e.Numero, &e.Titulo, &e.Fiscalia, &e.TipoCaso,
		&e.FechaHecho, &estado, &e.Justificacion, &e.Eliminado,
		&e.CreadoPor, &e.CreadoEn, &e.ModificadoPor, &e.ModificadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan expediente: %w", err)
	}
	e.Estado = entity.Estado(estado)
	return &e, nil
}

// Crear inserta en BORRADOR generando el número de expediente en la misma
// sentencia: correlativo anual tomado de la secuencia, atómico con el insert.
func (r *ExpedienteRepo) Crear(ctx context.Context, e *entity.Expediente, idUsuarioAccion int64) (int64, string, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return 0, "", err
	}
	query := `
		INSERT INTO expedientes (numero_expediente, titulo, fiscalia, tipo_caso, fecha_hecho, estado, creado_por)
		VALUES (
			'DICRI-' || to_char(now(), 'YYYY') || '-' ||
				lpad(nextval('expedientes_numero_seq')::text, 6, '0'),
			$1, $2, $3, $4, 'BORRADOR', $5)
		RETURNING id_expediente, numero_expediente`
	var id int64
	var numero string
	if err := q.QueryRow(ctx, query, e.Titulo, e.Fiscalia, e.TipoCaso, e.FechaHecho, idUsuarioAccion).Scan(&id, &numero); err != nil {
		return 0, "", fmt.Errorf("insertar expediente: %w", err)
	}
	return id, numero, nil
}

// Actualizar escribe los campos editables solo si la fila sigue en estado
// editable y no eliminada.
func (r *ExpedienteRepo) Actualizar(ctx context.Context, e *entity.Expediente, idUsuarioAccion int64) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE expedientes SET
			titulo = $2, fiscalia = $3, tipo_caso = $4, fecha_hecho = $5,
			modificado_por = $6, modificado_en = now()
		WHERE id_expediente = $1
		  AND NOT eliminado
		  AND estado IN ('BORRADOR', 'RECHAZADO')`
	tag, err := q.Exec(ctx, query, e.ID, e.Titulo, e.Fiscalia, e.TipoCaso, e.FechaHecho, idUsuarioAccion)
	if err != nil {
		return fmt.Errorf("actualizar expediente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.motivoRechazoEscritura(ctx, e.ID)
	}
	return nil
}

// CambiarEstado ejecuta la transición condicionada al estado de partida.
// Guarda la justificación al entrar a RECHAZADO y la limpia al salir.
func (r *ExpedienteRepo) CambiarEstado(ctx context.Context, id int64, de, a entity.Estado, justificacion *string, idUsuarioAccion int64) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE expedientes SET
			estado = $3, justificacion = $4,
			modificado_por = $5, modificado_en = now()
		WHERE id_expediente = $1
		  AND NOT eliminado
		  AND estado = $2`
	tag, err := q.Exec(ctx, query, id, string(de), string(a), justificacion, idUsuarioAccion)
	if err != nil {
		return fmt.Errorf("cambiar estado de expediente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		actual, err := r.ObtenerPorID(ctx, id)
		if err != nil {
			return err
		}
		if actual == nil || actual.Eliminado {
			return domain.ErrExpedienteNoEncontrado
		}
		return fmt.Errorf("%w: el expediente está en estado %s, no en %s",
			domain.ErrTransicionInvalida, actual.Estado, de)
	}
	return nil
}

// EliminarLogico marca el expediente como eliminado, con el mismo candado de
// estado que la edición de campos.
func (r *ExpedienteRepo) EliminarLogico(ctx context.Context, id int64, idUsuarioAccion int64) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE expedientes SET
			eliminado = TRUE, modificado_por = $2, modificado_en = now()
		WHERE id_expediente = $1
		  AND NOT eliminado
		  AND estado IN ('BORRADOR', 'RECHAZADO')`
	tag, err := q.Exec(ctx, query, id, idUsuarioAccion)
	if err != nil {
		return fmt.Errorf("eliminar expediente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.motivoRechazoEscritura(ctx, id)
	}
	return nil
}

// motivoRechazoEscritura distingue por qué un UPDATE condicionado no afectó
// filas: expediente inexistente/eliminado o fuera de la ventana editable.
func (r *ExpedienteRepo) motivoRechazoEscritura(ctx context.Context, id int64) error {
	actual, err := r.ObtenerPorID(ctx, id)
	if err != nil {
		return err
	}
	if actual == nil || actual.Eliminado {
		return domain.ErrExpedienteNoEncontrado
	}
	return domain.ErrExpedienteNoEditable
}
