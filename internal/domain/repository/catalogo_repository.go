package repository

import (
	"context"

	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
)

// CatalogoRepository puerto de solo lectura para los datos de referencia.
type CatalogoRepository interface {
	ListarFiscalias(ctx context.Context) ([]entity.Fiscalia, error)
	ListarTiposCaso(ctx context.Context) ([]entity.TipoCaso, error)
	// ObtenerFiscalia / ObtenerTipoCaso devuelven nil si el id no existe o
	// está inactivo: los snapshots solo se toman de filas activas.
	ObtenerFiscalia(ctx context.Context, id int64) (*entity.Fiscalia, error)
	ObtenerTipoCaso(ctx context.Context, id int64) (*entity.TipoCaso, error)
}
