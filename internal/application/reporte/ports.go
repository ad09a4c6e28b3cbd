package reporte

import (
	"context"

	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
)

// GeneradorPDF contrato del render del reporte de expediente. Lo implementa
// infrastructure/pdf con Maroto.
type GeneradorPDF interface {
	GenerarReporteExpediente(ctx context.Context, e *entity.Expediente, indicios []entity.Indicio) ([]byte, error)
}
