package repository

import (
	"context"

	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
)

// ExpedienteRepository puerto de persistencia para expedientes.
//
// Las operaciones de escritura re-verifican el estado del expediente en la
// propia sentencia SQL (defensa en profundidad): un cliente que esquive la
// validación de la capa de aplicación falla igual en la base.
type ExpedienteRepository interface {
	Listar(ctx context.Context, filtro entity.FiltroExpedientes) ([]entity.Expediente, error)
	ObtenerPorID(ctx context.Context, id int64) (*entity.Expediente, error)
	// Crear inserta en estado BORRADOR y genera el número de expediente de
	// forma atómica con el insert. Devuelve id y número generados.
	Crear(ctx context.Context, e *entity.Expediente, idUsuarioAccion int64) (int64, string, error)
	// Actualizar escribe los campos editables solo si el expediente sigue en
	// un estado editable; devuelve domain.ErrExpedienteNoEditable si no.
	Actualizar(ctx context.Context, e *entity.Expediente, idUsuarioAccion int64) error
	// CambiarEstado ejecuta la transición solo si el estado actual coincide
	// con `de`; si no, devuelve el error de dominio con el estado real.
	// Al pasar a RECHAZADO guarda la justificación; al salir la limpia.
	CambiarEstado(ctx context.Context, id int64, de, a entity.Estado, justificacion *string, idUsuarioAccion int64) error
	// EliminarLogico marca el expediente como eliminado (mismo candado de
	// estado que Actualizar). El borrado de sus indicios va aparte, en la
	// misma transacción (ver TxRunner).
	EliminarLogico(ctx context.Context, id int64, idUsuarioAccion int64) error
}

// IndicioRepository puerto de persistencia para indicios.
type IndicioRepository interface {
	ListarPorExpediente(ctx context.Context, idExpediente int64) ([]entity.Indicio, error)
	ObtenerPorID(ctx context.Context, id int64) (*entity.Indicio, error)
	// Crear inserta el indicio solo si el expediente padre está en estado
	// editable y no eliminado.
	Crear(ctx context.Context, i *entity.Indicio, idUsuarioAccion int64) (int64, error)
	Actualizar(ctx context.Context, i *entity.Indicio, idUsuarioAccion int64) error
	EliminarLogico(ctx context.Context, id int64, idUsuarioAccion int64) error
	// EliminarPorExpediente marca eliminados todos los indicios del
	// expediente (cascada del borrado lógico del padre).
	EliminarPorExpediente(ctx context.Context, idExpediente int64, idUsuarioAccion int64) error
}
