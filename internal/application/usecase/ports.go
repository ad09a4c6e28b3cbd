package usecase

import (
	"context"

	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. Commit solo si fn devuelve nil;
// rollback en cualquier otro caso, incluidos panics y salidas por error.
type TxRunner interface {
	// RunUsuarios transacción para el alta/edición de usuario con reemplazo
	// completo de sus asignaciones de rol.
	RunUsuarios(ctx context.Context, fn func(
		usuarios repository.UsuarioRepository,
		roles repository.UsuarioRolRepository,
	) error) error

	// RunExpedientes transacción para flujos multi-tabla de expedientes
	// (borrado lógico con cascada sobre indicios).
	RunExpedientes(ctx context.Context, fn func(
		expedientes repository.ExpedienteRepository,
		indicios repository.IndicioRepository,
	) error) error
}
