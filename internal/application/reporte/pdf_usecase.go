package reporte

import (
	"context"

	"github.com/dicri-gt/sii-dicri-api/internal/domain"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/repository"
)

// PDFUseCase genera el reporte PDF de un expediente con sus indicios.
type PDFUseCase struct {
	expedientes repository.ExpedienteRepository
	indicios    repository.IndicioRepository
	gen         GeneradorPDF
}

// NewPDFUseCase construye el caso de uso de reporte.
func NewPDFUseCase(expedientes repository.ExpedienteRepository, indicios repository.IndicioRepository, gen GeneradorPDF) *PDFUseCase {
	return &PDFUseCase{expedientes: expedientes, indicios: indicios, gen: gen}
}

// ReporteExpediente arma los datos y delega el render al generador.
func (uc *PDFUseCase) ReporteExpediente(ctx context.Context, id int64) ([]byte, error) {
	e, err := uc.expedientes.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || e.Eliminado {
		return nil, domain.ErrExpedienteNoEncontrado
	}
	indicios, err := uc.indicios.ListarPorExpediente(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.gen.GenerarReporteExpediente(ctx, e, indicios)
}
