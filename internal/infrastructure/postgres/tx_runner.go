package postgres

import (
	"context"
	"fmt"

	"github.com/dicri-gt/sii-dicri-api/internal/application/usecase"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta funciones de aplicación dentro de una transacción,
// entregándoles repositorios ligados a esa transacción. Si fn devuelve
// error se hace rollback de todo.
type TxRunner struct {
	db *DB
}

func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunUsuarios corre fn con repos transaccionales de usuarios y roles.
func (t *TxRunner) RunUsuarios(ctx context.Context, fn func(usuarios repository.UsuarioRepository, roles repository.UsuarioRolRepository) error) error {
	pool, err := t.db.Pool(ctx)
	if err != nil {
		return err
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newUsuarioRepositoryTx(tx), newUsuarioRolRepositoryTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("confirmar transacción: %w", err)
	}
	return nil
}

// RunExpedientes corre fn con repos transaccionales de expedientes e indicios.
func (t *TxRunner) RunExpedientes(ctx context.Context, fn func(expedientes repository.ExpedienteRepository, indicios repository.IndicioRepository) error) error {
	pool, err := t.db.Pool(ctx)
	if err != nil {
		return err
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newExpedienteRepositoryTx(tx), newIndicioRepositoryTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("confirmar transacción: %w", err)
	}
	return nil
}
