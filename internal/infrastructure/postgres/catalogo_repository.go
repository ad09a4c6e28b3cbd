package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
)

var _ repository.CatalogoRepository = (*CatalogoRepo)(nil)

// CatalogoRepo acceso de solo lectura a los catálogos de fiscalías y tipos de caso.
type CatalogoRepo struct {
	db *DB
}

func NewCatalogoRepository(db *DB) *CatalogoRepo {
	return &CatalogoRepo{db: db}
}

func (r *CatalogoRepo) ListarFiscalias(ctx context.Context) ([]entity.Fiscalia, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx,
		`SELECT id_fiscalia, nombre, activo FROM fiscalias WHERE activo ORDER BY id_fiscalia`)
	if err != nil {
		return nil, fmt.Errorf("listar fiscalías: %w", err)
	}
	defer rows.Close()

	var list []entity.Fiscalia
	for rows.Next() {
		var f entity.Fiscalia
		if err := rows.Scan(&f.ID, &f.Nombre, &f.Activo); err != nil {
			return nil, fmt.Errorf("scan fiscalía: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r *CatalogoRepo) ListarTiposCaso(ctx context.Context) ([]entity.TipoCaso, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx,
		`SELECT id_tipo_caso, nombre, activo FROM tipos_caso WHERE activo ORDER BY id_tipo_caso`)
	if err != nil {
		return nil, fmt.Errorf("listar tipos de caso: %w", err)
	}
	defer rows.Close()

	var list []entity.TipoCaso
	for rows.Next() {
		var t entity.TipoCaso
		if err := rows.Scan(&t.ID, &t.Nombre, &t.Activo); err != nil {
			return nil, fmt.Errorf("scan tipo de caso: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ObtenerFiscalia devuelve la fiscalía activa por id, o nil si no existe.
func (r *CatalogoRepo) ObtenerFiscalia(ctx context.Context, id int64) (*entity.Fiscalia, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	var f entity.Fiscalia
	err = pool.QueryRow(ctx,
		`SELECT id_fiscalia, nombre, activo FROM fiscalias WHERE id_fiscalia = $1 AND activo`, id,
	).Scan(&f.ID, &f.Nombre, &f.Activo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener fiscalía: %w", err)
	}
	return &f, nil
}

// ObtenerTipoCaso devuelve el tipo de caso activo por id, o nil si no existe.
func (r *CatalogoRepo) ObtenerTipoCaso(ctx context.Context, id int64) (*entity.TipoCaso, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	var t entity.TipoCaso
	err = pool.QueryRow(ctx,
		`SELECT id_tipo_caso, nombre, activo FROM tipos_caso WHERE id_tipo_caso = $1 AND activo`, id,
	).Scan(&t.ID, &t.Nombre, &t.Activo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener tipo de caso: %w", err)
	}
	return &t, nil
}
