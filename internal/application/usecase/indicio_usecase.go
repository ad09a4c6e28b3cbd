package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dicri-gt/sii-dicri-api/internal/application/auth"
	"github.com/dicri-gt/sii-dicri-api/internal/application/dto"
	"github.com/dicri-gt/sii-dicri-api/internal/domain"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
)

// IndicioUseCase reglas de negocio de los indicios. Toda escritura pasa por
// la ventana de mutabilidad del expediente padre.
type IndicioUseCase struct {
	indicios    repository.IndicioRepository
	expedientes repository.ExpedienteRepository
}

// NewIndicioUseCase construye el caso de uso con sus puertos.
func NewIndicioUseCase(indicios repository.IndicioRepository, expedientes repository.ExpedienteRepository) *IndicioUseCase {
	return &IndicioUseCase{indicios: indicios, expedientes: expedientes}
}

// Crear registra un indicio para un expediente editable.
func (uc *IndicioUseCase) Crear(ctx context.Context, ident auth.Identity, in dto.IndicioRequest) (int64, error) {
	if err := uc.verificarPadreEditable(ctx, ident, in.IDExpediente); err != nil {
		return 0, err
	}
	i, err := indicioDesdeRequest(in)
	if err != nil {
		return 0, err
	}
	return uc.indicios.Crear(ctx, i, ident.Sub)
}

// Actualizar edita un indicio existente, siempre que el padre siga editable.
func (uc *IndicioUseCase) Actualizar(ctx context.Context, ident auth.Identity, id int64, in dto.IndicioRequest) error {
	actual, err := uc.indicios.ObtenerPorID(ctx, id)
	if err != nil {
		return err
	}
	if actual == nil || actual.Eliminado {
		return domain.ErrIndicioNoEncontrado
	}
	if err := uc.verificarPadreEditable(ctx, ident, actual.IDExpediente); err != nil {
		return err
	}
	i, err := indicioDesdeRequest(in)
	if err != nil {
		return err
	}
	i.ID = id
	i.IDExpediente = actual.IDExpediente
	return uc.indicios.Actualizar(ctx, i, ident.Sub)
}

// Eliminar marca el indicio como eliminado (borrado lógico).
func (uc *IndicioUseCase) Eliminar(ctx context.Context, ident auth.Identity, id int64) error {
	actual, err := uc.indicios.ObtenerPorID(ctx, id)
	if err != nil {
		return err
	}
	if actual == nil || actual.Eliminado {
		return domain.ErrIndicioNoEncontrado
	}
	if err := uc.verificarPadreEditable(ctx, ident, actual.IDExpediente); err != nil {
		return err
	}
	return uc.indicios.EliminarLogico(ctx, id, ident.Sub)
}

// verificarPadreEditable aplica la regla de mutabilidad del expediente padre
// a las operaciones sobre sus indicios.
func (uc *IndicioUseCase) verificarPadreEditable(ctx context.Context, ident auth.Identity, idExpediente int64) error {
	e, err := uc.expedientes.ObtenerPorID(ctx, idExpediente)
	if err != nil {
		return err
	}
	if e == nil || e.Eliminado {
		return domain.ErrExpedienteNoEncontrado
	}
	return entity.PuedeEditar(e.Estado, ident.Roles)
}

func indicioDesdeRequest(in dto.IndicioRequest) (*entity.Indicio, error) {
	peso, err := parsePeso(in.Peso)
	if err != nil {
		return nil, err
	}
	return &entity.Indicio{
		IDExpediente: in.IDExpediente,
		Nombre:       strings.TrimSpace(in.Nombre),
		Descripcion:  strings.TrimSpace(in.Descripcion),
		Color:        strings.TrimSpace(in.Color),
		Tamano:       strings.TrimSpace(in.Tamano),
		Peso:         peso,
		Ubicacion:    strings.TrimSpace(in.Ubicacion),
	}, nil
}

// parsePeso convierte el texto del formulario a decimal. Acepta coma decimal
// ("1,5") y vacío (sin peso registrado).
func parsePeso(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: peso inválido %q", domain.ErrEntradaInvalida, s)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}
