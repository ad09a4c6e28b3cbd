package dto

import (
	"time"

	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
)

// ExpedienteRequest cuerpo de creación y actualización de expedientes.
// FechaHecho viaja en formato ISO (2006-01-02).
type ExpedienteRequest struct {
	Descripcion string `json:"descripcion"`
	IDFiscalia  int64  `json:"idFiscalia"`
	IDTipoCaso  int64  `json:"idTipoCaso"`
	FechaHecho  string `json:"fechaHecho"`
}

// CambiarEstadoRequest cuerpo del cambio de estado del expediente.
type CambiarEstadoRequest struct {
	NuevoEstado   string `json:"nuevoEstado"`
	Justificacion string `json:"justificacion"`
}

// ExpedienteResponse proyección JSON de un expediente.
type ExpedienteResponse struct {
	ID            int64      `json:"idExpediente"`
	Numero        string     `json:"numeroExpediente"`
	Titulo        string     `json:"descripcion"`
	Fiscalia      string     `json:"fiscalia"`
	TipoCaso      string     `json:"tipoCaso"`
	FechaHecho    string     `json:"fechaHecho"`
	Estado        string     `json:"estado"`
	Justificacion *string    `json:"justificacion,omitempty"`
	CreadoEn      time.Time  `json:"fechaCreacion"`
	ModificadoEn  *time.Time `json:"fechaModificacion,omitempty"`
}

// ExpedienteADTO convierte la entidad a su proyección JSON.
func ExpedienteADTO(e *entity.Expediente) ExpedienteResponse {
	return ExpedienteResponse{
		ID:            e.ID,
		Numero:        e.Numero,
		Titulo:        e.Titulo,
		Fiscalia:      e.Fiscalia,
		TipoCaso:      e.TipoCaso,
		FechaHecho:    e.FechaHecho.Format("2006-01-02"),
		Estado:        string(e.Estado),
		Justificacion: e.Justificacion,
		CreadoEn:      e.CreadoEn,
		ModificadoEn:  e.ModificadoEn,
	}
}

// ExpedientesADTO convierte el listado.
func ExpedientesADTO(es []entity.Expediente) []ExpedienteResponse {
	out := make([]ExpedienteResponse, len(es))
	for i := range es {
		out[i] = ExpedienteADTO(&es[i])
	}
	return out
}
