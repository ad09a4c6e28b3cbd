package usecase

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
)

// CatalogoUseCase lecturas de los catálogos de referencia. Los listados se
// ordenan con colación española para que "Ñ" y las vocales acentuadas queden
// donde el usuario espera.
type CatalogoUseCase struct {
	catalogos repository.CatalogoRepository
	col       *collate.Collator
}

// NewCatalogoUseCase construye el caso de uso.
func NewCatalogoUseCase(catalogos repository.CatalogoRepository) *CatalogoUseCase {
	return &CatalogoUseCase{
		catalogos: catalogos,
		col:       collate.New(language.Spanish, collate.IgnoreCase),
	}
}

// ListarFiscalias devuelve las fiscalías activas ordenadas por nombre.
func (uc *CatalogoUseCase) ListarFiscalias(ctx context.Context) ([]entity.Fiscalia, error) {
	fs, err := uc.catalogos.ListarFiscalias(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(fs, func(i, j int) bool {
		return uc.col.CompareString(fs[i].Nombre, fs[j].Nombre) < 0
	})
	return fs, nil
}

// ListarTiposCaso devuelve los tipos de caso activos ordenados por nombre.
func (uc *CatalogoUseCase) ListarTiposCaso(ctx context.Context) ([]entity.TipoCaso, error) {
	ts, err := uc.catalogos.ListarTiposCaso(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ts, func(i, j int) bool {
		return uc.col.CompareString(ts[i].Nombre, ts[j].Nombre) < 0
	})
	return ts, nil
}
